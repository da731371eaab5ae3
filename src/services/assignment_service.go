package services

import (
	"context"
	"sort"
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

// assignmentSortKeys is the closed set of logical sort keys the assignment
// list view accepts. "status" is absent on purpose: it sorts by the custom
// rank, not a physical column.
var assignmentSortKeys = query.NewSortMap("assignments.id", map[string]string{
	"assetCode":    "assets.code",
	"assetName":    "assets.name",
	"assignedTo":   "assignee.username",
	"assignedBy":   "assigner.username",
	"assignedDate": "assignments.assigned_date",
})

// AssignmentService owns the assignment lifecycle: creation against an
// available asset, the waiting-only edit window, the accept/decline response
// and the admin delete.
type AssignmentService struct {
	db          *gorm.DB
	assets      repositories.AssetRepository
	assignments repositories.AssignmentRepository
	users       repositories.UserRepository
	outbox      *Outbox
	reports     ReportInvalidator
}

func NewAssignmentService(db *gorm.DB, outbox *Outbox, reports ReportInvalidator) *AssignmentService {
	return &AssignmentService{
		db:          db,
		assets:      repositories.NewAssetRepository(db),
		assignments: repositories.NewAssignmentRepository(db),
		users:       repositories.NewUserRepository(db),
		outbox:      outbox,
		reports:     reports,
	}
}

// Create assigns an available asset to an assignee co-located with the asset
// and the assigner. The asset keeps its status until acceptance.
func (s *AssignmentService) Create(ctx context.Context, actor models.User, req schemas.CreateAssignmentRequest) (*schemas.AssignmentResponse, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}
	assignedDate, err := utils.ParseDate(req.AssignedDate)
	if err != nil {
		return nil, utils.InvalidArgument("assignedDate must be YYYY-MM-DD")
	}

	var assignment *models.Assignment
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assets := s.assets.WithTx(tx)
		assignments := s.assignments.WithTx(tx)

		asset, err := assets.FindActiveByID(ctx, req.AssetID)
		if err != nil {
			return err
		}
		if asset == nil {
			return utils.NotFound("asset not found")
		}
		if asset.Status != models.AssetAvailable {
			return utils.InvalidState("asset is not available for assignment")
		}

		assignee, err := s.users.WithTx(tx).FindByID(ctx, req.AssigneeID)
		if err != nil {
			return err
		}
		if assignee == nil || assignee.Disabled {
			return utils.NotFound("assignee not found")
		}

		if err := checkSameLocation(asset, &actor, assignee); err != nil {
			return err
		}
		if err := checkNoOtherWaitingAssignment(ctx, assignments, asset.ID, ""); err != nil {
			return err
		}

		assignment = &models.Assignment{
			ID:           uuid.NewString(),
			AssetID:      asset.ID,
			AssignerID:   actor.ID,
			AssigneeID:   assignee.ID,
			AssignedDate: assignedDate,
			Note:         req.Note,
			Status:       models.AssignmentWaiting,
			State:        models.StateActive,
			Asset:        asset,
			Assigner:     &actor,
			Assignee:     assignee,
		}
		if err := assignments.Create(ctx, assignment); err != nil {
			return err
		}

		return s.outbox.Append(ctx, tx, models.NotifyAssignmentCreated,
			actor.ID, assignee.ID, &assignment.ID, nil)
	})
	if err != nil {
		return nil, err
	}

	resp := schemas.NewAssignmentResponse(assignment)
	return &resp, nil
}

// Update edits a waiting assignment. The guards re-read the row inside the
// transaction, so a concurrent accept, decline or delete shows up here as
// InvalidState or Gone rather than a lost update.
func (s *AssignmentService) Update(ctx context.Context, actor models.User, id string, req schemas.UpdateAssignmentRequest) (*schemas.AssignmentResponse, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}

	var assignment *models.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assets := s.assets.WithTx(tx)
		assignments := s.assignments.WithTx(tx)

		var err error
		assignment, err = assignments.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if assignment == nil {
			return utils.NotFound("assignment not found")
		}
		if assignment.State == models.StateDeleted {
			return utils.Gone("assignment was modified by another user")
		}
		if assignment.Status != models.AssignmentWaiting {
			return utils.InvalidState("only waiting assignments can be edited")
		}

		assignee := assignment.Assignee
		if req.AssigneeID != nil && *req.AssigneeID != assignment.AssigneeID {
			assignee, err = s.users.WithTx(tx).FindByID(ctx, *req.AssigneeID)
			if err != nil {
				return err
			}
			if assignee == nil || assignee.Disabled {
				return utils.NotFound("assignee not found")
			}
			assignment.AssigneeID = assignee.ID
			assignment.Assignee = assignee
		}

		asset := assignment.Asset
		assetChanged := req.AssetID != nil && *req.AssetID != assignment.AssetID
		if assetChanged {
			asset, err = assets.FindActiveByID(ctx, *req.AssetID)
			if err != nil {
				return err
			}
			if asset == nil {
				return utils.NotFound("asset not found")
			}
			if asset.Status != models.AssetAvailable {
				return utils.InvalidState("asset is not available for assignment")
			}
			// The waiting-uniqueness check is skipped when the asset reference
			// is unchanged: a self-reference is always valid.
			if err := checkNoOtherWaitingAssignment(ctx, assignments, asset.ID, assignment.ID); err != nil {
				return err
			}
			assignment.AssetID = asset.ID
			assignment.Asset = asset
		}

		assigner := assignment.Assigner
		if assigner == nil {
			assigner, err = s.users.WithTx(tx).FindByID(ctx, assignment.AssignerID)
			if err != nil {
				return err
			}
		}
		if err := checkSameLocation(asset, assigner, assignee); err != nil {
			return err
		}

		if req.AssignedDate != nil {
			assignedDate, err := utils.ParseDate(*req.AssignedDate)
			if err != nil {
				return utils.InvalidArgument("assignedDate must be YYYY-MM-DD")
			}
			assignment.AssignedDate = assignedDate
		}
		if req.Note != nil {
			assignment.Note = *req.Note
		}

		return assignments.Save(ctx, assignment)
	})
	if err != nil {
		return nil, err
	}

	resp := schemas.NewAssignmentResponse(assignment)
	return &resp, nil
}

// Respond lets the assignee accept or decline a waiting assignment.
// Accepting marks the asset ASSIGNED; declining leaves it untouched.
func (s *AssignmentService) Respond(ctx context.Context, actor models.User, id string, rawDecision string) (*schemas.AssignmentResponse, error) {
	decision, ok := models.ParseAssignmentDecision(rawDecision)
	if !ok {
		return nil, utils.InvalidArgument("decision must be ACCEPTED or DECLINED")
	}

	var assignment *models.Assignment
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := s.assignments.WithTx(tx)

		var err error
		assignment, err = assignments.FindActiveByID(ctx, id)
		if err != nil {
			return err
		}
		if assignment == nil {
			return utils.NotFound("assignment not found")
		}
		if assignment.Status != models.AssignmentWaiting {
			return utils.InvalidState("assignment is no longer waiting for acceptance")
		}
		if assignment.AssigneeID != actor.ID {
			return utils.Forbidden("only the assignee can respond to the assignment")
		}

		assignment.Status = decision
		if err := assignments.Save(ctx, assignment); err != nil {
			return err
		}

		eventType := models.NotifyAssignmentDeclined
		if decision == models.AssignmentAccepted {
			eventType = models.NotifyAssignmentAccepted

			assets := s.assets.WithTx(tx)
			asset, err := assets.FindActiveByID(ctx, assignment.AssetID)
			if err != nil {
				return err
			}
			if asset == nil {
				return utils.NotFound("asset not found")
			}
			asset.Status = models.AssetAssigned
			if err := assets.Save(ctx, asset); err != nil {
				return err
			}
			assignment.Asset = asset
		}

		return s.outbox.Append(ctx, tx, eventType,
			actor.ID, assignment.AssignerID, &assignment.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	if decision == models.AssignmentAccepted {
		invalidateReport(ctx, s.reports)
	}

	resp := schemas.NewAssignmentResponse(assignment)
	return &resp, nil
}

// Delete soft-deletes a waiting or declined assignment. The asset status is
// untouched.
func (s *AssignmentService) Delete(ctx context.Context, actor models.User, id string) error {
	if err := checkAdmin(actor); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignments := s.assignments.WithTx(tx)
		assignment, err := assignments.FindActiveByID(ctx, id)
		if err != nil {
			return err
		}
		if assignment == nil {
			return utils.NotFound("assignment not found")
		}
		if assignment.Status != models.AssignmentWaiting && assignment.Status != models.AssignmentDeclined {
			return utils.InvalidState("only waiting or declined assignments can be deleted")
		}

		assignment.State = models.StateDeleted
		return assignments.Save(ctx, assignment)
	})
}

// Get returns the shaped view of one non-deleted assignment.
func (s *AssignmentService) Get(ctx context.Context, id string) (*schemas.AssignmentResponse, error) {
	assignment, err := s.assignments.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, utils.NotFound("assignment not found")
	}
	resp := schemas.NewAssignmentResponse(assignment)
	return &resp, nil
}

// List returns a page of assignments matching the optional filter criteria.
// Sorting by status uses the caller-defined rank, which the relational
// engine cannot order by inside a page-limited query, so that key fetches
// all matching rows, sorts in the rank dimension and pages client-side.
func (s *AssignmentService) List(ctx context.Context, f schemas.AssignmentFilter) (schemas.Page[schemas.AssignmentResponse], error) {
	spec := assignmentSpec(f)
	page := query.NormalizePage(f.Page, f.Size)

	if f.SortKey == "status" {
		return s.listRankedByStatus(ctx, spec, f.SortDir, page)
	}

	order := assignmentSortKeys.Order(f.SortKey, f.SortDir)
	assignments, total, err := s.assignments.FindPage(ctx, spec, order, page)
	if err != nil {
		return schemas.Page[schemas.AssignmentResponse]{}, err
	}
	return assignmentPage(assignments, total, page), nil
}

func (s *AssignmentService) listRankedByStatus(ctx context.Context, spec query.Specification, direction string, page query.PageRequest) (schemas.Page[schemas.AssignmentResponse], error) {
	assignments, err := s.assignments.FindAllMatching(ctx, spec, "")
	if err != nil {
		return schemas.Page[schemas.AssignmentResponse]{}, err
	}

	desc := query.NormalizeDirection(direction) == query.DirectionDesc
	sort.SliceStable(assignments, func(i, j int) bool {
		ri, rj := query.AssignmentStatusRank(assignments[i].Status), query.AssignmentStatusRank(assignments[j].Status)
		if desc {
			return ri > rj
		}
		return ri < rj
	})

	total := int64(len(assignments))
	return assignmentPage(query.Slice(assignments, page), total, page), nil
}

func assignmentPage(assignments []models.Assignment, total int64, page query.PageRequest) schemas.Page[schemas.AssignmentResponse] {
	content := make([]schemas.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		content = append(content, schemas.NewAssignmentResponse(&assignments[i]))
	}
	return schemas.NewPage(content, total, page.Page, page.Size)
}

// MyAssignments is the home view: the caller's own assignments with an
// assigned date no later than today, excluding declined and returned ones.
func (s *AssignmentService) MyAssignments(ctx context.Context, actor models.User) ([]schemas.AssignmentResponse, error) {
	today := utils.EndOfDay(time.Now())
	spec := query.NewBuilder().
		Add(func(db *gorm.DB) *gorm.DB {
			return db.Where("assignments.assignee_id = ?", actor.ID).
				Where("assignments.assigned_date <= ?", today).
				Where("assignments.status NOT IN ?", []models.AssignmentStatus{
					models.AssignmentDeclined, models.AssignmentReturned,
				})
		}).
		Build()

	assignments, err := s.assignments.FindAllMatching(ctx, spec, "assignments.assigned_date ASC")
	if err != nil {
		return nil, err
	}

	content := make([]schemas.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		content = append(content, schemas.NewAssignmentResponse(&assignments[i]))
	}
	return content, nil
}

// assignmentSpec composes the present filter criteria into one conjunctive
// predicate over the joined assignment list query.
func assignmentSpec(f schemas.AssignmentFilter) query.Specification {
	b := query.NewBuilder()
	b.AddString(f.Keyword, func(kw string) query.Specification {
		like := "%" + strings.ToLower(kw) + "%"
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(assets.code) LIKE ? OR LOWER(assets.name) LIKE ? OR LOWER(assignee.username) LIKE ?",
				like, like, like)
		}
	})
	b.AddIf(len(f.Statuses) > 0, func(db *gorm.DB) *gorm.DB {
		return db.Where("assignments.status IN ?", f.Statuses)
	})
	b.AddIf(f.AssignedDate != nil, func(db *gorm.DB) *gorm.DB {
		return db.Where("assignments.assigned_date BETWEEN ? AND ?",
			utils.BeginningOfDay(*f.AssignedDate), utils.EndOfDay(*f.AssignedDate))
	})
	b.AddString(f.LocationID, func(id string) query.Specification {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("assets.location_id = ?", id)
		}
	})
	return b.Build()
}
