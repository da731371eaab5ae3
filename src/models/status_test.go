package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"assethub/src/models"
)

func TestStatusLabels(t *testing.T) {
	t.Run("asset labels", func(t *testing.T) {
		assert.Equal(t, "Available", models.AssetStatusLabel(models.AssetAvailable))
		assert.Equal(t, "Not available", models.AssetStatusLabel(models.AssetNotAvailable))
		assert.Equal(t, "Assigned", models.AssetStatusLabel(models.AssetAssigned))
		assert.Equal(t, "Waiting for recycling", models.AssetStatusLabel(models.AssetWaiting))
		assert.Equal(t, "Recycled", models.AssetStatusLabel(models.AssetRecycled))
	})

	t.Run("assignment labels", func(t *testing.T) {
		assert.Equal(t, "Waiting for acceptance", models.AssignmentStatusLabel(models.AssignmentWaiting))
		assert.Equal(t, "Accepted", models.AssignmentStatusLabel(models.AssignmentAccepted))
		assert.Equal(t, "Declined", models.AssignmentStatusLabel(models.AssignmentDeclined))
		assert.Equal(t, "Returned", models.AssignmentStatusLabel(models.AssignmentReturned))
	})

	t.Run("returning request labels", func(t *testing.T) {
		assert.Equal(t, "Waiting for returning", models.ReturningRequestStatusLabel(models.ReturningWaiting))
		assert.Equal(t, "Completed", models.ReturningRequestStatusLabel(models.ReturningCompleted))
	})

	t.Run("unknown values pass through", func(t *testing.T) {
		assert.Equal(t, "SOMETHING", models.AssetStatusLabel(models.AssetStatus("SOMETHING")))
	})
}

func TestParseAssignmentDecision(t *testing.T) {
	decision, ok := models.ParseAssignmentDecision("ACCEPTED")
	assert.True(t, ok)
	assert.Equal(t, models.AssignmentAccepted, decision)

	decision, ok = models.ParseAssignmentDecision("DECLINED")
	assert.True(t, ok)
	assert.Equal(t, models.AssignmentDeclined, decision)

	for _, raw := range []string{"WAITING", "RETURNED", "accepted", ""} {
		_, ok := models.ParseAssignmentDecision(raw)
		assert.False(t, ok, raw)
	}
}

func TestUserHelpers(t *testing.T) {
	admin := models.User{FirstName: "Ada", LastName: "Lovelace", Role: models.RoleAdmin}
	staff := models.User{FirstName: "Joe", Role: models.RoleStaff}

	assert.True(t, admin.IsAdmin())
	assert.False(t, staff.IsAdmin())
	assert.Equal(t, "Ada Lovelace", admin.FullName())
	assert.Equal(t, "Joe", staff.FullName())
	assert.Equal(t, "Lovelace", models.User{LastName: "Lovelace"}.FullName())
}
