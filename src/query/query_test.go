package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"assethub/src/models"
	"assethub/src/query"
	"assethub/src/testutil"
)

func TestBuilder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	location := testutil.SeedLocation(t, db, "Hanoi", "HN")
	category := testutil.SeedCategory(t, db, "Laptop", "LA")
	available := testutil.SeedAsset(t, db, category, location.ID, models.AssetAvailable)
	testutil.SeedAsset(t, db, category, location.ID, models.AssetRecycled)

	t.Run("empty builder matches everything", func(t *testing.T) {
		spec := query.NewBuilder().Build()

		var count int64
		require.NoError(t, spec(db.Model(&models.Asset{})).Count(&count).Error)
		assert.EqualValues(t, 2, count)
	})

	t.Run("added criteria are conjunctive", func(t *testing.T) {
		spec := query.NewBuilder().
			Add(func(db *gorm.DB) *gorm.DB {
				return db.Where("assets.status = ?", models.AssetAvailable)
			}).
			AddString(location.ID, func(id string) query.Specification {
				return func(db *gorm.DB) *gorm.DB {
					return db.Where("assets.location_id = ?", id)
				}
			}).
			Build()

		var got []models.Asset
		require.NoError(t, spec(db.Model(&models.Asset{})).Find(&got).Error)
		require.Len(t, got, 1)
		assert.Equal(t, available.ID, got[0].ID)
	})

	t.Run("blank and absent criteria contribute nothing", func(t *testing.T) {
		spec := query.NewBuilder().
			AddString("  ", func(string) query.Specification { return query.Identity }).
			AddIf(false, func(db *gorm.DB) *gorm.DB {
				return db.Where("1 = 0")
			}).
			Build()

		var count int64
		require.NoError(t, spec(db.Model(&models.Asset{})).Count(&count).Error)
		assert.EqualValues(t, 2, count)
	})
}

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, query.PageRequest{Page: 1, Size: query.DefaultPageSize}, query.NormalizePage(0, 0))
	assert.Equal(t, query.PageRequest{Page: 1, Size: query.DefaultPageSize}, query.NormalizePage(-3, -1))
	assert.Equal(t, query.PageRequest{Page: 4, Size: 10}, query.NormalizePage(4, 10))
	assert.Equal(t, query.PageRequest{Page: 1, Size: query.MaxPageSize}, query.NormalizePage(1, 5000))

	assert.Equal(t, 30, query.PageRequest{Page: 4, Size: 10}.Offset())
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, query.Slice(items, query.PageRequest{Page: 1, Size: 2}))
	assert.Equal(t, []int{5}, query.Slice(items, query.PageRequest{Page: 3, Size: 2}))
	assert.Empty(t, query.Slice(items, query.PageRequest{Page: 4, Size: 2}))
}

func TestSortMap(t *testing.T) {
	m := query.NewSortMap("assets.code", map[string]string{
		"assetName": "assets.name",
		"category":  "categories.name",
	})

	assert.Equal(t, "assets.name", m.Resolve("assetName"))
	assert.Equal(t, "assets.code", m.Resolve("noSuchKey"))
	assert.Equal(t, "categories.name ASC", m.Order("category", "asc"))
	assert.Equal(t, "categories.name DESC", m.Order("category", "DESC"))
	assert.Equal(t, "assets.code ASC", m.Order("", "sideways"))
}

func TestNormalizeDirection(t *testing.T) {
	assert.Equal(t, query.DirectionDesc, query.NormalizeDirection("desc"))
	assert.Equal(t, query.DirectionDesc, query.NormalizeDirection("DESC"))
	assert.Equal(t, query.DirectionDesc, query.NormalizeDirection("Desc"))
	assert.Equal(t, query.DirectionAsc, query.NormalizeDirection("asc"))
	assert.Equal(t, query.DirectionAsc, query.NormalizeDirection(""))
	assert.Equal(t, query.DirectionAsc, query.NormalizeDirection("sideways"))
}

func TestAssignmentStatusRank(t *testing.T) {
	assert.Equal(t, 1, query.AssignmentStatusRank(models.AssignmentWaiting))
	assert.Equal(t, 2, query.AssignmentStatusRank(models.AssignmentDeclined))
	assert.Equal(t, 3, query.AssignmentStatusRank(models.AssignmentAccepted))
	assert.Equal(t, 4, query.AssignmentStatusRank(models.AssignmentReturned))
}
