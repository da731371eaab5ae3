package schemas

import (
	"time"

	"assethub/src/models"
)

type CreateAssignmentRequest struct {
	AssetID      string `json:"assetId"`
	AssigneeID   string `json:"assigneeId"`
	AssignedDate string `json:"assignedDate"`
	Note         string `json:"note"`
}

type UpdateAssignmentRequest struct {
	AssetID      *string `json:"assetId,omitempty"`
	AssigneeID   *string `json:"assigneeId,omitempty"`
	AssignedDate *string `json:"assignedDate,omitempty"`
	Note         *string `json:"note,omitempty"`
}

type RespondAssignmentRequest struct {
	Decision string `json:"decision"`
}

// AssignmentFilter carries the optional list criteria.
type AssignmentFilter struct {
	Keyword      string
	Statuses     []models.AssignmentStatus
	AssignedDate *time.Time
	LocationID   string
	Page         int
	Size         int
	SortKey      string
	SortDir      string
}

type AssignmentResponse struct {
	ID           string    `json:"id"`
	AssetCode    string    `json:"assetCode"`
	AssetName    string    `json:"assetName"`
	AssignedTo   string    `json:"assignedTo"`
	AssignedBy   string    `json:"assignedBy"`
	AssignedDate time.Time `json:"assignedDate"`
	Note         string    `json:"note"`
	Status       string    `json:"status"`
	StatusLabel  string    `json:"statusLabel"`
}

func NewAssignmentResponse(a *models.Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:           a.ID,
		AssignedDate: a.AssignedDate,
		Note:         a.Note,
		Status:       string(a.Status),
		StatusLabel:  models.AssignmentStatusLabel(a.Status),
	}
	if a.Asset != nil {
		resp.AssetCode = a.Asset.Code
		resp.AssetName = a.Asset.Name
	}
	if a.Assignee != nil {
		resp.AssignedTo = a.Assignee.Username
	}
	if a.Assigner != nil {
		resp.AssignedBy = a.Assigner.Username
	}
	return resp
}
