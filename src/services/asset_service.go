package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
	"assethub/src/repositories"
	"assethub/src/schemas"
	"assethub/src/utils"
)

// assetSortKeys is the closed set of logical sort keys the asset list view
// accepts.
var assetSortKeys = query.NewSortMap("assets.code", map[string]string{
	"assetCode":     "assets.code",
	"assetName":     "assets.name",
	"category":      "categories.name",
	"installedDate": "assets.installed_date",
	"status":        "assets.status",
})

// AssetService owns the asset side of the lifecycle rules: creation states,
// the restricted status edit, and deletion guarded by assignment history.
type AssetService struct {
	db          *gorm.DB
	assets      repositories.AssetRepository
	categories  repositories.CategoryRepository
	assignments repositories.AssignmentRepository
	reports     ReportInvalidator
}

func NewAssetService(db *gorm.DB, reports ReportInvalidator) *AssetService {
	return &AssetService{
		db:          db,
		assets:      repositories.NewAssetRepository(db),
		categories:  repositories.NewCategoryRepository(db),
		assignments: repositories.NewAssignmentRepository(db),
		reports:     reports,
	}
}

// Create registers a new asset at the creating admin's location. Only
// AVAILABLE and NOT_AVAILABLE are legal creation states.
func (s *AssetService) Create(ctx context.Context, actor models.User, req schemas.CreateAssetRequest) (*schemas.AssetResponse, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}

	status := models.AssetStatus(req.Status)
	if status != models.AssetAvailable && status != models.AssetNotAvailable {
		return nil, utils.InvalidArgument("new assets must be Available or Not available")
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, utils.InvalidArgument("asset name is required")
	}
	installedDate, err := utils.ParseDate(req.InstalledDate)
	if err != nil {
		return nil, utils.InvalidArgument("installedDate must be YYYY-MM-DD")
	}

	var asset *models.Asset
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categories := s.categories.WithTx(tx)
		category, err := categories.FindByID(ctx, req.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return utils.NotFound("category not found")
		}

		code, err := categories.NextCode(ctx, category.ID)
		if err != nil {
			return err
		}

		asset = &models.Asset{
			ID:            uuid.NewString(),
			Code:          code,
			Name:          req.Name,
			Specification: req.Specification,
			CategoryID:    category.ID,
			LocationID:    actor.LocationID,
			InstalledDate: installedDate,
			Status:        status,
			State:         models.StateActive,
			Category:      category,
			Location:      actor.Location,
		}
		return s.assets.WithTx(tx).Create(ctx, asset)
	})
	if err != nil {
		return nil, err
	}
	invalidateReport(ctx, s.reports)

	resp := schemas.NewAssetResponse(asset)
	return &resp, nil
}

// Update edits an active asset. Status changes are restricted to the edit
// validator's closed set, and an ASSIGNED asset cannot have its status edited
// directly. The location never changes.
func (s *AssetService) Update(ctx context.Context, actor models.User, id string, req schemas.UpdateAssetRequest) (*schemas.AssetResponse, error) {
	if err := checkAdmin(actor); err != nil {
		return nil, err
	}

	var asset *models.Asset
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assets := s.assets.WithTx(tx)
		var err error
		asset, err = assets.FindActiveByID(ctx, id)
		if err != nil {
			return err
		}
		if asset == nil {
			return utils.NotFound("asset not found")
		}

		if req.Status != nil {
			status := models.AssetStatus(*req.Status)
			switch status {
			case models.AssetAvailable, models.AssetNotAvailable, models.AssetWaiting, models.AssetRecycled:
			default:
				return utils.InvalidArgument("status must be Available, Not available, Waiting for recycling or Recycled")
			}
			if asset.Status == models.AssetAssigned {
				return utils.InvalidState("cannot edit the status of an assigned asset")
			}
			asset.Status = status
		}
		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				return utils.InvalidArgument("asset name is required")
			}
			asset.Name = *req.Name
		}
		if req.Specification != nil {
			asset.Specification = *req.Specification
		}
		if req.InstalledDate != nil {
			installedDate, err := utils.ParseDate(*req.InstalledDate)
			if err != nil {
				return utils.InvalidArgument("installedDate must be YYYY-MM-DD")
			}
			asset.InstalledDate = installedDate
		}

		return assets.Save(ctx, asset)
	})
	if err != nil {
		return nil, err
	}
	invalidateReport(ctx, s.reports)

	resp := schemas.NewAssetResponse(asset)
	return &resp, nil
}

// Delete soft-deletes an asset that is neither assigned nor historically
// tied to any assignment.
func (s *AssetService) Delete(ctx context.Context, actor models.User, id string) error {
	if err := checkAdmin(actor); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assets := s.assets.WithTx(tx)
		asset, err := assets.FindActiveByID(ctx, id)
		if err != nil {
			return err
		}
		if asset == nil {
			return utils.NotFound("asset not found")
		}

		if err := checkAssetDeletable(ctx, s.assignments.WithTx(tx), asset); err != nil {
			return err
		}

		asset.State = models.StateDeleted
		return assets.Save(ctx, asset)
	})
	if err != nil {
		return err
	}
	invalidateReport(ctx, s.reports)
	return nil
}

// Get returns the shaped view of one active asset.
func (s *AssetService) Get(ctx context.Context, id string) (*schemas.AssetResponse, error) {
	asset, err := s.assets.FindActiveByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, utils.NotFound("asset not found")
	}
	resp := schemas.NewAssetResponse(asset)
	return &resp, nil
}

// List returns a page of assets matching the optional filter criteria.
func (s *AssetService) List(ctx context.Context, f schemas.AssetFilter) (schemas.Page[schemas.AssetResponse], error) {
	spec := assetSpec(f)
	page := query.NormalizePage(f.Page, f.Size)
	order := assetSortKeys.Order(f.SortKey, f.SortDir)

	assets, total, err := s.assets.FindPage(ctx, spec, order, page)
	if err != nil {
		return schemas.Page[schemas.AssetResponse]{}, err
	}

	content := make([]schemas.AssetResponse, 0, len(assets))
	for i := range assets {
		content = append(content, schemas.NewAssetResponse(&assets[i]))
	}
	return schemas.NewPage(content, total, page.Page, page.Size), nil
}

// ListAll returns every asset matching the filter, for the export paths that
// render the whole result set instead of a page.
func (s *AssetService) ListAll(ctx context.Context, f schemas.AssetFilter) ([]schemas.AssetResponse, error) {
	spec := assetSpec(f)
	order := assetSortKeys.Order(f.SortKey, f.SortDir)

	assets, err := s.assets.FindAllMatching(ctx, spec, order)
	if err != nil {
		return nil, err
	}

	content := make([]schemas.AssetResponse, 0, len(assets))
	for i := range assets {
		content = append(content, schemas.NewAssetResponse(&assets[i]))
	}
	return content, nil
}

// assetSpec composes the present filter criteria into one conjunctive
// predicate over the joined asset list query.
func assetSpec(f schemas.AssetFilter) query.Specification {
	b := query.NewBuilder()
	b.AddString(f.Keyword, func(kw string) query.Specification {
		like := "%" + strings.ToLower(kw) + "%"
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("LOWER(assets.name) LIKE ? OR LOWER(assets.code) LIKE ?", like, like)
		}
	})
	b.AddString(f.CategoryID, func(id string) query.Specification {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("assets.category_id = ?", id)
		}
	})
	b.AddIf(len(f.Statuses) > 0, func(db *gorm.DB) *gorm.DB {
		return db.Where("assets.status IN ?", f.Statuses)
	})
	b.AddString(f.LocationID, func(id string) query.Specification {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("assets.location_id = ?", id)
		}
	})
	return b.Build()
}
