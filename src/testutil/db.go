package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"assethub/src/models"
)

// SetupTestDB opens an isolated in-memory database and migrates the full
// schema into it. Each call returns a fresh database, so tests never share
// state.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Location{},
		&models.Category{},
		&models.User{},
		&models.Asset{},
		&models.Assignment{},
		&models.ReturningRequest{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func SeedLocation(t *testing.T, db *gorm.DB, name, code string) models.Location {
	t.Helper()
	location := models.Location{ID: uuid.NewString(), Name: name, Code: code}
	require.NoError(t, db.Create(&location).Error)
	return location
}

func SeedCategory(t *testing.T, db *gorm.DB, name, prefix string) models.Category {
	t.Helper()
	category := models.Category{ID: uuid.NewString(), Name: name, Prefix: prefix, NextNumber: 1}
	require.NoError(t, db.Create(&category).Error)
	return category
}

func SeedUser(t *testing.T, db *gorm.DB, username string, role models.Role, locationID string) models.User {
	t.Helper()
	user := models.User{
		ID:         uuid.NewString(),
		Username:   username,
		FirstName:  "Test",
		LastName:   username,
		Role:       role,
		LocationID: locationID,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func SeedAsset(t *testing.T, db *gorm.DB, category models.Category, locationID string, status models.AssetStatus) models.Asset {
	t.Helper()
	asset := models.Asset{
		ID:            uuid.NewString(),
		Code:          category.Prefix + uuid.NewString()[:6],
		Name:          "Test Asset",
		CategoryID:    category.ID,
		LocationID:    locationID,
		InstalledDate: time.Now().AddDate(0, -1, 0),
		Status:        status,
		State:         models.StateActive,
	}
	require.NoError(t, db.Create(&asset).Error)
	return asset
}

func SeedAssignment(t *testing.T, db *gorm.DB, asset models.Asset, assigner, assignee models.User, status models.AssignmentStatus) models.Assignment {
	t.Helper()
	assignment := models.Assignment{
		ID:           uuid.NewString(),
		AssetID:      asset.ID,
		AssignerID:   assigner.ID,
		AssigneeID:   assignee.ID,
		AssignedDate: time.Now().AddDate(0, 0, -1),
		Status:       status,
		State:        models.StateActive,
	}
	require.NoError(t, db.Create(&assignment).Error)
	return assignment
}

func SeedReturningRequest(t *testing.T, db *gorm.DB, assignment models.Assignment, requester models.User, status models.ReturningRequestStatus) models.ReturningRequest {
	t.Helper()
	request := models.ReturningRequest{
		ID:           uuid.NewString(),
		AssignmentID: assignment.ID,
		RequesterID:  requester.ID,
		Status:       status,
	}
	require.NoError(t, db.Create(&request).Error)
	if status != models.ReturningCompleted {
		require.NoError(t, db.Model(&models.Assignment{}).
			Where("id = ?", assignment.ID).
			Update("returning_request_id", request.ID).Error)
	}
	return request
}
