package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/schemas"
	"assethub/src/services"
	"assethub/src/testutil"
	"assethub/src/utils"
)

func assetFixture(t *testing.T) (*gorm.DB, *services.AssetService, models.User, models.Category) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	location := testutil.SeedLocation(t, db, "Hanoi", "HN")
	category := testutil.SeedCategory(t, db, "Laptop", "LA")
	admin := testutil.SeedUser(t, db, "admin", models.RoleAdmin, location.ID)
	return db, services.NewAssetService(db, nil), admin, category
}

func TestAssetCreate(t *testing.T) {
	db, svc, admin, category := assetFixture(t)
	ctx := context.Background()

	t.Run("generates sequential codes and pins the actor's location", func(t *testing.T) {
		first, err := svc.Create(ctx, admin, schemas.CreateAssetRequest{
			Name:          "MacBook Pro",
			CategoryID:    category.ID,
			InstalledDate: "2024-01-15",
			Status:        "AVAILABLE",
		})
		require.NoError(t, err)
		assert.Equal(t, "LA000001", first.Code)
		assert.Equal(t, "Available", first.StatusLabel)

		second, err := svc.Create(ctx, admin, schemas.CreateAssetRequest{
			Name:          "ThinkPad",
			CategoryID:    category.ID,
			InstalledDate: "2024-02-01",
			Status:        "NOT_AVAILABLE",
		})
		require.NoError(t, err)
		assert.Equal(t, "LA000002", second.Code)

		var stored models.Asset
		require.NoError(t, db.First(&stored, "id = ?", first.ID).Error)
		assert.Equal(t, admin.LocationID, stored.LocationID)
	})

	t.Run("rejects creation states outside AVAILABLE and NOT_AVAILABLE", func(t *testing.T) {
		for _, status := range []string{"ASSIGNED", "WAITING", "RECYCLED", "bogus"} {
			_, err := svc.Create(ctx, admin, schemas.CreateAssetRequest{
				Name:          "X",
				CategoryID:    category.ID,
				InstalledDate: "2024-01-15",
				Status:        status,
			})
			assert.True(t, utils.IsKind(err, utils.KindInvalidArgument), status)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := svc.Create(ctx, admin, schemas.CreateAssetRequest{
			Name:          "X",
			CategoryID:    "no-such-category",
			InstalledDate: "2024-01-15",
			Status:        "AVAILABLE",
		})
		assert.True(t, utils.IsKind(err, utils.KindNotFound))
	})

	t.Run("staff cannot create", func(t *testing.T) {
		staff := testutil.SeedUser(t, db, "staff1", models.RoleStaff, admin.LocationID)
		_, err := svc.Create(ctx, staff, schemas.CreateAssetRequest{
			Name:          "X",
			CategoryID:    category.ID,
			InstalledDate: "2024-01-15",
			Status:        "AVAILABLE",
		})
		assert.True(t, utils.IsKind(err, utils.KindForbidden))
	})
}

func TestAssetUpdate(t *testing.T) {
	db, svc, admin, category := assetFixture(t)
	ctx := context.Background()

	asset := testutil.SeedAsset(t, db, category, admin.LocationID, models.AssetAvailable)

	t.Run("partial edit keeps untouched fields", func(t *testing.T) {
		name := "Renamed"
		status := "RECYCLED"
		resp, err := svc.Update(ctx, admin, asset.ID, schemas.UpdateAssetRequest{
			Name:   &name,
			Status: &status,
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", resp.Name)
		assert.Equal(t, "RECYCLED", resp.Status)
		assert.Equal(t, asset.Code, resp.Code)
	})

	t.Run("ASSIGNED is never a legal edit target", func(t *testing.T) {
		status := "ASSIGNED"
		_, err := svc.Update(ctx, admin, asset.ID, schemas.UpdateAssetRequest{Status: &status})
		assert.True(t, utils.IsKind(err, utils.KindInvalidArgument))
	})

	t.Run("an assigned asset cannot have its status edited", func(t *testing.T) {
		assigned := testutil.SeedAsset(t, db, category, admin.LocationID, models.AssetAssigned)
		status := "AVAILABLE"
		_, err := svc.Update(ctx, admin, assigned.ID, schemas.UpdateAssetRequest{Status: &status})
		assert.True(t, utils.IsKind(err, utils.KindInvalidState))
	})

	t.Run("unknown asset", func(t *testing.T) {
		name := "X"
		_, err := svc.Update(ctx, admin, "missing", schemas.UpdateAssetRequest{Name: &name})
		assert.True(t, utils.IsKind(err, utils.KindNotFound))
	})
}

func TestAssetDelete(t *testing.T) {
	db, svc, admin, category := assetFixture(t)
	ctx := context.Background()
	staff := testutil.SeedUser(t, db, "staff", models.RoleStaff, admin.LocationID)

	t.Run("assigned assets cannot be deleted", func(t *testing.T) {
		asset := testutil.SeedAsset(t, db, category, admin.LocationID, models.AssetAssigned)
		err := svc.Delete(ctx, admin, asset.ID)
		assert.True(t, utils.IsKind(err, utils.KindInvalidState))
	})

	t.Run("historical assignments block deletion even when soft-deleted", func(t *testing.T) {
		asset := testutil.SeedAsset(t, db, category, admin.LocationID, models.AssetAvailable)
		assignment := testutil.SeedAssignment(t, db, asset, admin, staff, models.AssignmentDeclined)
		require.NoError(t, db.Model(&models.Assignment{}).
			Where("id = ?", assignment.ID).
			Update("state", models.StateDeleted).Error)

		err := svc.Delete(ctx, admin, asset.ID)
		assert.True(t, utils.IsKind(err, utils.KindConflict))
	})

	t.Run("a clean asset is soft-deleted and vanishes from reads", func(t *testing.T) {
		asset := testutil.SeedAsset(t, db, category, admin.LocationID, models.AssetAvailable)
		require.NoError(t, svc.Delete(ctx, admin, asset.ID))

		_, err := svc.Get(ctx, asset.ID)
		assert.True(t, utils.IsKind(err, utils.KindNotFound))

		// The row itself survives for history.
		var stored models.Asset
		require.NoError(t, db.First(&stored, "id = ?", asset.ID).Error)
		assert.Equal(t, models.StateDeleted, stored.State)
	})

	t.Run("deleting twice reports NotFound", func(t *testing.T) {
		asset := testutil.SeedAsset(t, db, category, admin.LocationID, models.AssetAvailable)
		require.NoError(t, svc.Delete(ctx, admin, asset.ID))
		err := svc.Delete(ctx, admin, asset.ID)
		assert.True(t, utils.IsKind(err, utils.KindNotFound))
	})
}

func TestAssetList(t *testing.T) {
	db, svc, admin, category := assetFixture(t)
	ctx := context.Background()

	monitors := testutil.SeedCategory(t, db, "Monitor", "MO")
	for i := 0; i < 3; i++ {
		testutil.SeedAsset(t, db, category, admin.LocationID, models.AssetAvailable)
	}
	recycled := testutil.SeedAsset(t, db, monitors, admin.LocationID, models.AssetRecycled)

	t.Run("filters are conjunctive", func(t *testing.T) {
		page, err := svc.List(ctx, schemas.AssetFilter{
			CategoryID: monitors.ID,
			Statuses:   []models.AssetStatus{models.AssetRecycled},
		})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.TotalElements)
		require.Len(t, page.Content, 1)
		assert.Equal(t, recycled.ID, page.Content[0].ID)
	})

	t.Run("page envelope", func(t *testing.T) {
		page, err := svc.List(ctx, schemas.AssetFilter{Page: 2, Size: 3})
		require.NoError(t, err)
		assert.EqualValues(t, 4, page.TotalElements)
		assert.Equal(t, 2, page.TotalPages)
		assert.Equal(t, 2, page.Page)
		assert.Len(t, page.Content, 1)
		assert.False(t, page.Empty)
	})

	t.Run("out-of-range page is clamped, not rejected", func(t *testing.T) {
		page, err := svc.List(ctx, schemas.AssetFilter{Page: -5, Size: -1})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Content, 4)
	})
}
