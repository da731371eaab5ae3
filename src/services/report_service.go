package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
	"assethub/src/repositories"
	"assethub/src/schemas"
	"assethub/src/utils"
	redis_utils "assethub/src/utils/redis"
)

const (
	reportCacheKey = "report:rows"
	reportCacheTTL = 60 * time.Second
)

// reportSortKeys maps the report's logical sort keys to the aggregate
// aliases of the grouped query. Unrecognized keys fall back to the category
// name.
var reportSortKeys = query.NewSortMap("category_name", map[string]string{
	"category":     "category_name",
	"total":        "total",
	"assigned":     "assigned",
	"available":    "available",
	"notAvailable": "not_available",
	"waiting":      "waiting",
	"recycled":     "recycled",
})

// ReportInvalidator is the mutation-side handle to the report cache. The
// lifecycle services hold one and drop the cached rows whenever a write
// changes per-category status counts; a nil handle means no cache to drop.
type ReportInvalidator interface {
	Invalidate(ctx context.Context)
}

// invalidateReport drops the report cache after a status-changing write; a
// nil handle is a no-op.
func invalidateReport(ctx context.Context, reports ReportInvalidator) {
	if reports != nil {
		reports.Invalidate(ctx)
	}
}

// ReportService computes the per-category status breakdown. Reads tolerate
// eventual consistency, so the unpaged report is served from a short-lived
// cache: Redis when configured, an in-process TTL cache otherwise.
type ReportService struct {
	categories repositories.CategoryRepository
	assets     repositories.AssetRepository
	reports    repositories.ReportRepository
	redis      *redis_utils.RedisHandler
	cache      *utils.Cache[[]schemas.ReportRow]
}

func NewReportService(db *gorm.DB, redisHandler *redis_utils.RedisHandler) *ReportService {
	return &ReportService{
		categories: repositories.NewCategoryRepository(db),
		assets:     repositories.NewAssetRepository(db),
		reports:    repositories.NewReportRepository(db),
		redis:      redisHandler,
		cache:      utils.NewCache[[]schemas.ReportRow](),
	}
}

// Rows returns the unpaged report: one row per category, zeroed when the
// category has no assets, counted with a five-way branch per asset.
func (s *ReportService) Rows(ctx context.Context) ([]schemas.ReportRow, error) {
	if rows, ok := s.cachedRows(ctx); ok {
		return rows, nil
	}

	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	assets, err := s.assets.FindAllMatching(ctx, query.Identity, "")
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*schemas.ReportRow, len(categories))
	rows := make([]schemas.ReportRow, 0, len(categories))
	for _, category := range categories {
		rows = append(rows, schemas.ReportRow{
			CategoryID:   category.ID,
			CategoryName: category.Name,
		})
		byCategory[category.ID] = &rows[len(rows)-1]
	}

	for i := range assets {
		row, ok := byCategory[assets[i].CategoryID]
		if !ok {
			continue
		}
		row.Total++
		switch assets[i].Status {
		case models.AssetAssigned:
			row.Assigned++
		case models.AssetAvailable:
			row.Available++
		case models.AssetNotAvailable:
			row.NotAvailable++
		case models.AssetWaiting:
			row.Waiting++
		case models.AssetRecycled:
			row.Recycled++
		}
	}

	s.storeRows(ctx, rows)
	return rows, nil
}

// Page returns the paged report, sortable by total or any status bucket via
// conditional sums evaluated per category group.
func (s *ReportService) Page(ctx context.Context, f schemas.ReportFilter) (schemas.Page[schemas.ReportRow], error) {
	page := query.NormalizePage(f.Page, f.Size)
	order := reportSortKeys.Order(f.SortKey, f.SortDir)

	rows, total, err := s.reports.RowsPage(ctx, order, page)
	if err != nil {
		return schemas.Page[schemas.ReportRow]{}, err
	}
	return schemas.NewPage(rows, total, page.Page, page.Size), nil
}

// Invalidate drops the cached report so the next read recomputes it. The
// lifecycle services call it after every write that changes status counts.
func (s *ReportService) Invalidate(ctx context.Context) {
	if s.redis != nil {
		if err := s.redis.Delete(ctx, reportCacheKey); err != nil {
			utils.LoggerFromContext(ctx).WithError(err).Warn("report cache drop failed")
		}
		return
	}
	s.cache.Clear()
}

func (s *ReportService) cachedRows(ctx context.Context) ([]schemas.ReportRow, bool) {
	if s.redis != nil {
		var rows []schemas.ReportRow
		found, err := s.redis.Get(ctx, reportCacheKey, &rows)
		if err != nil {
			utils.LoggerFromContext(ctx).WithError(err).Warn("report cache read failed")
			return nil, false
		}
		return rows, found
	}
	return s.cache.Get()
}

func (s *ReportService) storeRows(ctx context.Context, rows []schemas.ReportRow) {
	if s.redis != nil {
		if err := s.redis.Set(ctx, reportCacheKey, rows, reportCacheTTL); err != nil {
			utils.LoggerFromContext(ctx).WithError(err).Warn("report cache write failed")
		}
		return
	}
	s.cache.Set(rows, reportCacheTTL)
}
