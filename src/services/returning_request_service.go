package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
	"assethub/src/repositories"
	"assethub/src/schemas"
	"assethub/src/utils"
)

// returningRequestSortKeys is the closed set of logical sort keys the
// returning request list view accepts.
var returningRequestSortKeys = query.NewSortMap("returning_requests.id", map[string]string{
	"assetCode":    "assets.code",
	"assetName":    "assets.name",
	"requestedBy":  "requester.username",
	"acceptedBy":   "accepter.username",
	"assignedDate": "assignments.assigned_date",
	"returnedDate": "returning_requests.returned_date",
	"status":       "returning_requests.status",
})

// ReturningRequestService owns the hand-back workflow: requesting the return
// of an accepted assignment, completing it, or cancelling it while waiting.
type ReturningRequestService struct {
	db          *gorm.DB
	assets      repositories.AssetRepository
	assignments repositories.AssignmentRepository
	requests    repositories.ReturningRequestRepository
	users       repositories.UserRepository
	outbox      *Outbox
	reports     ReportInvalidator
}

func NewReturningRequestService(db *gorm.DB, outbox *Outbox, reports ReportInvalidator) *ReturningRequestService {
	return &ReturningRequestService{
		db:          db,
		assets:      repositories.NewAssetRepository(db),
		assignments: repositories.NewAssignmentRepository(db),
		requests:    repositories.NewReturningRequestRepository(db),
		users:       repositories.NewUserRepository(db),
		outbox:      outbox,
		reports:     reports,
	}
}

// Create opens a returning request for an accepted assignment. Admins may
// request the return of any accepted assignment; staff only their own.
func (s *ReturningRequestService) Create(ctx context.Context, actor models.User, req schemas.CreateReturningRequest) (*schemas.ReturningRequestResponse, error) {
	var returnedDate *time.Time
	if strings.TrimSpace(req.ReturnedDate) != "" {
		parsed, err := utils.ParseDate(req.ReturnedDate)
		if err != nil {
			return nil, utils.InvalidArgument("returnedDate must be YYYY-MM-DD")
		}
		returnedDate = &parsed
	}

	var request *models.ReturningRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := s.assignments.WithTx(tx)
		requests := s.requests.WithTx(tx)

		assignment, err := assignments.FindActiveByID(ctx, req.AssignmentID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return utils.NotFound("assignment not found")
		}
		if assignment.Status != models.AssignmentAccepted {
			return utils.InvalidState("only accepted assignments can be returned")
		}
		if !actor.IsAdmin() && assignment.AssigneeID != actor.ID {
			return utils.Forbidden("only the assignee or an admin can request the return")
		}

		if err := checkNoActiveReturn(ctx, requests, assignment.ID); err != nil {
			return err
		}

		request = &models.ReturningRequest{
			ID:           uuid.NewString(),
			AssignmentID: assignment.ID,
			RequesterID:  actor.ID,
			ReturnedDate: returnedDate,
			Status:       models.ReturningWaiting,
			Assignment:   assignment,
			Requester:    &actor,
		}
		if err := requests.Create(ctx, request); err != nil {
			return err
		}

		assignment.ReturningRequestID = &request.ID
		if err := assignments.Save(ctx, assignment); err != nil {
			return err
		}

		return s.notifyReturnRequested(ctx, tx, actor, assignment, request)
	})
	if err != nil {
		return nil, err
	}

	resp := schemas.NewReturningRequestResponse(request)
	return &resp, nil
}

// notifyReturnRequested picks recipients by role: an admin-initiated request
// notifies the assignee; a staff-initiated one notifies the co-located
// admins, excluding the requester.
func (s *ReturningRequestService) notifyReturnRequested(ctx context.Context, tx *gorm.DB, actor models.User, assignment *models.Assignment, request *models.ReturningRequest) error {
	if actor.IsAdmin() {
		return s.outbox.Append(ctx, tx, models.NotifyReturnRequested,
			actor.ID, assignment.AssigneeID, &assignment.ID, &request.ID)
	}

	admins, err := s.users.WithTx(tx).FindAdminsByLocation(ctx, actor.LocationID)
	if err != nil {
		return err
	}
	for _, admin := range admins {
		if admin.ID == actor.ID {
			continue
		}
		if err := s.outbox.Append(ctx, tx, models.NotifyReturnRequested,
			actor.ID, admin.ID, &assignment.ID, &request.ID); err != nil {
			return err
		}
	}
	return nil
}

// Complete finalizes a waiting returning request: the request completes, the
// assignment becomes RETURNED and the asset goes back to the available pool.
// Completing an already-completed request is a benign no-op so retries stay
// idempotent.
func (s *ReturningRequestService) Complete(ctx context.Context, actor models.User, id string) (*schemas.ReturningRequestResponse, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}

	var request *models.ReturningRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)
		assignments := s.assignments.WithTx(tx)
		assets := s.assets.WithTx(tx)

		var err error
		request, err = requests.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if request == nil {
			return utils.NotFound("returning request not found")
		}
		if request.Status == models.ReturningCompleted {
			// Already finalized; idempotent under retry.
			return nil
		}

		assignment, err := assignments.FindActiveByID(ctx, request.AssignmentID)
		if err != nil {
			return err
		}
		if assignment == nil {
			return utils.NotFound("assignment not found")
		}

		asset, err := assets.FindActiveByID(ctx, assignment.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return utils.NotFound("asset not found")
		}
		if asset.LocationID != actor.LocationID {
			return utils.Forbidden("only an admin at the asset's location can complete the return")
		}

		now := time.Now()
		request.Status = models.ReturningCompleted
		request.ReturnedDate = &now
		request.AccepterID = &actor.ID
		request.Accepter = &actor
		if err := requests.Save(ctx, request); err != nil {
			return err
		}

		assignment.Status = models.AssignmentReturned
		if err := assignments.Save(ctx, assignment); err != nil {
			return err
		}
		request.Assignment = assignment

		asset.Status = models.AssetAvailable
		if err := assets.Save(ctx, asset); err != nil {
			return err
		}
		assignment.Asset = asset

		return s.outbox.Append(ctx, tx, models.NotifyReturnCompleted,
			actor.ID, request.RequesterID, &assignment.ID, &request.ID)
	})
	if err != nil {
		return nil, err
	}
	invalidateReport(ctx, s.reports)

	resp := schemas.NewReturningRequestResponse(request)
	return &resp, nil
}

// Cancel takes a waiting returning request back out of existence. The
// requester or any admin may cancel; completed requests cannot be cancelled.
func (s *ReturningRequestService) Cancel(ctx context.Context, actor models.User, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		requests := s.requests.WithTx(tx)
		assignments := s.assignments.WithTx(tx)

		request, err := requests.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if request == nil {
			return utils.NotFound("returning request not found")
		}
		if request.Status != models.ReturningWaiting {
			return utils.InvalidState("only waiting returning requests can be cancelled")
		}
		if !actor.IsAdmin() && request.RequesterID != actor.ID {
			return utils.Forbidden("only the requester or an admin can cancel the request")
		}

		assignment, err := assignments.FindActiveByID(ctx, request.AssignmentID)
		if err != nil {
			return err
		}
		if assignment != nil && assignment.ReturningRequestID != nil && *assignment.ReturningRequestID == request.ID {
			assignment.ReturningRequestID = nil
			if err := assignments.Save(ctx, assignment); err != nil {
				return err
			}
		}

		return requests.Delete(ctx, request.ID)
	})
}

// List returns a page of returning requests matching the optional filter
// criteria.
func (s *ReturningRequestService) List(ctx context.Context, f schemas.ReturningRequestFilter) (schemas.Page[schemas.ReturningRequestResponse], error) {
	spec := returningRequestSpec(f)
	page := query.NormalizePage(f.Page, f.Size)
	order := returningRequestSortKeys.Order(f.SortKey, f.SortDir)

	requests, total, err := s.requests.FindPage(ctx, spec, order, page)
	if err != nil {
		return schemas.Page[schemas.ReturningRequestResponse]{}, err
	}

	content := make([]schemas.ReturningRequestResponse, 0, len(requests))
	for i := range requests {
		content = append(content, schemas.NewReturningRequestResponse(&requests[i]))
	}
	return schemas.NewPage(content, total, page.Page, page.Size), nil
}

// returningRequestSpec composes the present filter criteria into one
// conjunctive predicate over the joined returning request list query.
func returningRequestSpec(f schemas.ReturningRequestFilter) query.Specification {
	b := query.NewBuilder()
	b.AddString(f.Keyword, func(kw string) query.Specification {
		like := "%" + strings.ToLower(kw) + "%"
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(assets.code) LIKE ? OR LOWER(assets.name) LIKE ? OR LOWER(requester.username) LIKE ?",
				like, like, like)
		}
	})
	b.AddIf(len(f.Statuses) > 0, func(db *gorm.DB) *gorm.DB {
		return db.Where("returning_requests.status IN ?", f.Statuses)
	})
	b.AddIf(f.ReturnedDate != nil, func(db *gorm.DB) *gorm.DB {
		return db.Where("returning_requests.returned_date BETWEEN ? AND ?",
			utils.BeginningOfDay(*f.ReturnedDate), utils.EndOfDay(*f.ReturnedDate))
	})
	b.AddString(f.LocationID, func(id string) query.Specification {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("assets.location_id = ?", id)
		}
	})
	return b.Build()
}
