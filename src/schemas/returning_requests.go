package schemas

import (
	"time"

	"assethub/src/models"
)

type CreateReturningRequest struct {
	AssignmentID string `json:"assignmentId"`
	ReturnedDate string `json:"returnedDate,omitempty"`
}

// ReturningRequestFilter carries the optional list criteria.
type ReturningRequestFilter struct {
	Keyword      string
	Statuses     []models.ReturningRequestStatus
	ReturnedDate *time.Time
	LocationID   string
	Page         int
	Size         int
	SortKey      string
	SortDir      string
}

type ReturningRequestResponse struct {
	ID           string     `json:"id"`
	AssetCode    string     `json:"assetCode"`
	AssetName    string     `json:"assetName"`
	RequestedBy  string     `json:"requestedBy"`
	AcceptedBy   string     `json:"acceptedBy,omitempty"`
	AssignedDate time.Time  `json:"assignedDate"`
	ReturnedDate *time.Time `json:"returnedDate,omitempty"`
	Status       string     `json:"status"`
	StatusLabel  string     `json:"statusLabel"`
}

func NewReturningRequestResponse(r *models.ReturningRequest) ReturningRequestResponse {
	resp := ReturningRequestResponse{
		ID:           r.ID,
		ReturnedDate: r.ReturnedDate,
		Status:       string(r.Status),
		StatusLabel:  models.ReturningRequestStatusLabel(r.Status),
	}
	if r.Requester != nil {
		resp.RequestedBy = r.Requester.Username
	}
	if r.Accepter != nil {
		resp.AcceptedBy = r.Accepter.Username
	}
	if r.Assignment != nil {
		resp.AssignedDate = r.Assignment.AssignedDate
		if r.Assignment.Asset != nil {
			resp.AssetCode = r.Assignment.Asset.Code
			resp.AssetName = r.Assignment.Asset.Name
		}
	}
	return resp
}
