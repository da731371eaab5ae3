package schemas

import (
	"time"

	"assethub/src/models"
)

type CreateAssetRequest struct {
	Name          string `json:"name"`
	Specification string `json:"specification"`
	CategoryID    string `json:"categoryId"`
	InstalledDate string `json:"installedDate"`
	Status        string `json:"status"`
}

type UpdateAssetRequest struct {
	Name          *string `json:"name,omitempty"`
	Specification *string `json:"specification,omitempty"`
	InstalledDate *string `json:"installedDate,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// AssetFilter carries the optional list criteria; blank fields contribute no
// predicate.
type AssetFilter struct {
	Keyword    string
	CategoryID string
	Statuses   []models.AssetStatus
	LocationID string
	Page       int
	Size       int
	SortKey    string
	SortDir    string
}

type AssetResponse struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Specification string    `json:"specification"`
	CategoryName  string    `json:"categoryName"`
	LocationName  string    `json:"locationName"`
	InstalledDate time.Time `json:"installedDate"`
	Status        string    `json:"status"`
	StatusLabel   string    `json:"statusLabel"`
}

// NewAssetResponse shapes the entity view returned to callers.
func NewAssetResponse(a *models.Asset) AssetResponse {
	resp := AssetResponse{
		ID:            a.ID,
		Code:          a.Code,
		Name:          a.Name,
		Specification: a.Specification,
		InstalledDate: a.InstalledDate,
		Status:        string(a.Status),
		StatusLabel:   models.AssetStatusLabel(a.Status),
	}
	if a.Category != nil {
		resp.CategoryName = a.Category.Name
	}
	if a.Location != nil {
		resp.LocationName = a.Location.Name
	}
	return resp
}
