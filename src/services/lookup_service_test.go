package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"assethub/src/services"
	"assethub/src/testutil"
)

func TestLookupService(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := services.NewLookupService(db)
	ctx := context.Background()

	testutil.SeedLocation(t, db, "Ho Chi Minh", "HCM")
	testutil.SeedLocation(t, db, "Da Nang", "DN")
	testutil.SeedCategory(t, db, "Monitor", "MO")
	testutil.SeedCategory(t, db, "Laptop", "LA")

	t.Run("locations come back ordered by name", func(t *testing.T) {
		locations, err := svc.Locations(ctx)
		require.NoError(t, err)
		require.Len(t, locations, 2)
		require.Equal(t, "Da Nang", locations[0].Name)
		require.Equal(t, "Ho Chi Minh", locations[1].Name)
	})

	t.Run("categories come back ordered by name", func(t *testing.T) {
		categories, err := svc.Categories(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		require.Equal(t, "Laptop", categories[0].Name)
		require.Equal(t, "Monitor", categories[1].Name)
	})
}
