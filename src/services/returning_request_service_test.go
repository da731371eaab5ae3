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

type returnFixture struct {
	db       *gorm.DB
	svc      *services.ReturningRequestService
	admin    models.User
	staff    models.User
	category models.Category
	location models.Location
}

func newReturnFixture(t *testing.T) returnFixture {
	t.Helper()
	db := testutil.SetupTestDB(t)
	location := testutil.SeedLocation(t, db, "Hanoi", "HN")
	return returnFixture{
		db:       db,
		svc:      services.NewReturningRequestService(db, services.NewOutbox(db), nil),
		admin:    testutil.SeedUser(t, db, "admin", models.RoleAdmin, location.ID),
		staff:    testutil.SeedUser(t, db, "staff", models.RoleStaff, location.ID),
		category: testutil.SeedCategory(t, db, "Laptop", "LA"),
		location: location,
	}
}

// acceptedAssignment seeds an asset in the ASSIGNED state together with the
// accepted assignment holding it.
func (f returnFixture) acceptedAssignment(t *testing.T) (models.Asset, models.Assignment) {
	t.Helper()
	asset := testutil.SeedAsset(t, f.db, f.category, f.location.ID, models.AssetAssigned)
	assignment := testutil.SeedAssignment(t, f.db, asset, f.admin, f.staff, models.AssignmentAccepted)
	return asset, assignment
}

func TestReturningRequestCreate(t *testing.T) {
	f := newReturnFixture(t)
	ctx := context.Background()

	t.Run("assignee opens a request and the assignment records it", func(t *testing.T) {
		_, assignment := f.acceptedAssignment(t)

		resp, err := f.svc.Create(ctx, f.staff, schemas.CreateReturningRequest{AssignmentID: assignment.ID})
		require.NoError(t, err)
		assert.Equal(t, "WAITING", resp.Status)
		assert.Equal(t, "Waiting for returning", resp.StatusLabel)
		assert.Equal(t, f.staff.Username, resp.RequestedBy)

		var stored models.Assignment
		require.NoError(t, f.db.First(&stored, "id = ?", assignment.ID).Error)
		require.NotNil(t, stored.ReturningRequestID)
		assert.Equal(t, resp.ID, *stored.ReturningRequestID)
	})

	t.Run("a staff request notifies co-located admins, not the requester", func(t *testing.T) {
		secondAdmin := testutil.SeedUser(t, f.db, "admin2", models.RoleAdmin, f.location.ID)
		elsewhere := testutil.SeedLocation(t, f.db, "Da Nang", "DN")
		testutil.SeedUser(t, f.db, "admin3", models.RoleAdmin, elsewhere.ID)
		_, assignment := f.acceptedAssignment(t)

		_, err := f.svc.Create(ctx, f.staff, schemas.CreateReturningRequest{AssignmentID: assignment.ID})
		require.NoError(t, err)

		var recipients []string
		require.NoError(t, f.db.Model(&models.Notification{}).
			Where("type = ? AND assignment_id = ?", models.NotifyReturnRequested, assignment.ID).
			Pluck("recipient_id", &recipients).Error)
		assert.ElementsMatch(t, []string{f.admin.ID, secondAdmin.ID}, recipients)
	})

	t.Run("an admin request notifies the assignee", func(t *testing.T) {
		_, assignment := f.acceptedAssignment(t)

		_, err := f.svc.Create(ctx, f.admin, schemas.CreateReturningRequest{AssignmentID: assignment.ID})
		require.NoError(t, err)

		var recipients []string
		require.NoError(t, f.db.Model(&models.Notification{}).
			Where("type = ? AND assignment_id = ?", models.NotifyReturnRequested, assignment.ID).
			Pluck("recipient_id", &recipients).Error)
		assert.Equal(t, []string{f.staff.ID}, recipients)
	})

	t.Run("only accepted assignments can be returned", func(t *testing.T) {
		for _, status := range []models.AssignmentStatus{models.AssignmentWaiting, models.AssignmentDeclined, models.AssignmentReturned} {
			asset := testutil.SeedAsset(t, f.db, f.category, f.location.ID, models.AssetAvailable)
			assignment := testutil.SeedAssignment(t, f.db, asset, f.admin, f.staff, status)

			_, err := f.svc.Create(ctx, f.staff, schemas.CreateReturningRequest{AssignmentID: assignment.ID})
			assert.True(t, utils.IsKind(err, utils.KindInvalidState), string(status))
		}
	})

	t.Run("staff cannot return someone else's assignment", func(t *testing.T) {
		other := testutil.SeedUser(t, f.db, "bystander", models.RoleStaff, f.location.ID)
		_, assignment := f.acceptedAssignment(t)

		_, err := f.svc.Create(ctx, other, schemas.CreateReturningRequest{AssignmentID: assignment.ID})
		assert.True(t, utils.IsKind(err, utils.KindForbidden))
	})

	t.Run("a second active request conflicts", func(t *testing.T) {
		_, assignment := f.acceptedAssignment(t)

		_, err := f.svc.Create(ctx, f.staff, schemas.CreateReturningRequest{AssignmentID: assignment.ID})
		require.NoError(t, err)
		_, err = f.svc.Create(ctx, f.admin, schemas.CreateReturningRequest{AssignmentID: assignment.ID})
		assert.True(t, utils.IsKind(err, utils.KindConflict))
	})
}

func TestReturningRequestComplete(t *testing.T) {
	f := newReturnFixture(t)
	ctx := context.Background()

	t.Run("completion closes the whole chain", func(t *testing.T) {
		asset, assignment := f.acceptedAssignment(t)
		request := testutil.SeedReturningRequest(t, f.db, assignment, f.staff, models.ReturningWaiting)

		resp, err := f.svc.Complete(ctx, f.admin, request.ID)
		require.NoError(t, err)
		assert.Equal(t, "COMPLETED", resp.Status)
		assert.Equal(t, f.admin.Username, resp.AcceptedBy)
		require.NotNil(t, resp.ReturnedDate)

		var storedAssignment models.Assignment
		require.NoError(t, f.db.First(&storedAssignment, "id = ?", assignment.ID).Error)
		assert.Equal(t, models.AssignmentReturned, storedAssignment.Status)

		var storedAsset models.Asset
		require.NoError(t, f.db.First(&storedAsset, "id = ?", asset.ID).Error)
		assert.Equal(t, models.AssetAvailable, storedAsset.Status)

		var delivered int64
		require.NoError(t, f.db.Model(&models.Notification{}).
			Where("type = ? AND recipient_id = ?", models.NotifyReturnCompleted, f.staff.ID).
			Count(&delivered).Error)
		assert.EqualValues(t, 1, delivered)
	})

	t.Run("completing twice is a benign no-op", func(t *testing.T) {
		_, assignment := f.acceptedAssignment(t)
		request := testutil.SeedReturningRequest(t, f.db, assignment, f.staff, models.ReturningWaiting)

		first, err := f.svc.Complete(ctx, f.admin, request.ID)
		require.NoError(t, err)
		second, err := f.svc.Complete(ctx, f.admin, request.ID)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "COMPLETED", second.Status)
	})

	t.Run("staff cannot complete", func(t *testing.T) {
		_, assignment := f.acceptedAssignment(t)
		request := testutil.SeedReturningRequest(t, f.db, assignment, f.staff, models.ReturningWaiting)

		_, err := f.svc.Complete(ctx, f.staff, request.ID)
		assert.True(t, utils.IsKind(err, utils.KindForbidden))
	})

	t.Run("an admin at another location cannot complete", func(t *testing.T) {
		elsewhere := testutil.SeedLocation(t, f.db, "Da Nang", "DN")
		remoteAdmin := testutil.SeedUser(t, f.db, "remote-admin", models.RoleAdmin, elsewhere.ID)
		_, assignment := f.acceptedAssignment(t)
		request := testutil.SeedReturningRequest(t, f.db, assignment, f.staff, models.ReturningWaiting)

		_, err := f.svc.Complete(ctx, remoteAdmin, request.ID)
		assert.True(t, utils.IsKind(err, utils.KindForbidden))
	})

	t.Run("unknown request", func(t *testing.T) {
		_, err := f.svc.Complete(ctx, f.admin, "missing")
		assert.True(t, utils.IsKind(err, utils.KindNotFound))
	})
}

func TestReturningRequestCancel(t *testing.T) {
	f := newReturnFixture(t)
	ctx := context.Background()

	t.Run("the requester cancels and the back-reference clears", func(t *testing.T) {
		_, assignment := f.acceptedAssignment(t)
		request := testutil.SeedReturningRequest(t, f.db, assignment, f.staff, models.ReturningWaiting)

		require.NoError(t, f.svc.Cancel(ctx, f.staff, request.ID))

		var stored models.Assignment
		require.NoError(t, f.db.First(&stored, "id = ?", assignment.ID).Error)
		assert.Nil(t, stored.ReturningRequestID)

		var count int64
		require.NoError(t, f.db.Model(&models.ReturningRequest{}).
			Where("id = ?", request.ID).Count(&count).Error)
		assert.EqualValues(t, 0, count)
	})

	t.Run("a bystander cannot cancel", func(t *testing.T) {
		other := testutil.SeedUser(t, f.db, "onlooker", models.RoleStaff, f.location.ID)
		_, assignment := f.acceptedAssignment(t)
		request := testutil.SeedReturningRequest(t, f.db, assignment, f.staff, models.ReturningWaiting)

		err := f.svc.Cancel(ctx, other, request.ID)
		assert.True(t, utils.IsKind(err, utils.KindForbidden))
	})

	t.Run("completed requests cannot be cancelled", func(t *testing.T) {
		_, assignment := f.acceptedAssignment(t)
		request := testutil.SeedReturningRequest(t, f.db, assignment, f.staff, models.ReturningCompleted)

		err := f.svc.Cancel(ctx, f.admin, request.ID)
		assert.True(t, utils.IsKind(err, utils.KindInvalidState))
	})
}

// TestAssignmentLifecycle drives one asset through the whole journey:
// assignment, acceptance, return request, completion.
func TestAssignmentLifecycle(t *testing.T) {
	f := newReturnFixture(t)
	ctx := context.Background()
	assignments := services.NewAssignmentService(f.db, services.NewOutbox(f.db), nil)

	asset := testutil.SeedAsset(t, f.db, f.category, f.location.ID, models.AssetAvailable)

	created, err := assignments.Create(ctx, f.admin, schemas.CreateAssignmentRequest{
		AssetID:      asset.ID,
		AssigneeID:   f.staff.ID,
		AssignedDate: "2024-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "WAITING", created.Status)

	accepted, err := assignments.Respond(ctx, f.staff, created.ID, "ACCEPTED")
	require.NoError(t, err)
	assert.Equal(t, "ACCEPTED", accepted.Status)

	opened, err := f.svc.Create(ctx, f.staff, schemas.CreateReturningRequest{AssignmentID: created.ID})
	require.NoError(t, err)

	completed, err := f.svc.Complete(ctx, f.admin, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", completed.Status)

	var finalAsset models.Asset
	require.NoError(t, f.db.First(&finalAsset, "id = ?", asset.ID).Error)
	assert.Equal(t, models.AssetAvailable, finalAsset.Status)

	var finalAssignment models.Assignment
	require.NoError(t, f.db.First(&finalAssignment, "id = ?", created.ID).Error)
	assert.Equal(t, models.AssignmentReturned, finalAssignment.Status)

	// Every lifecycle step left its event in the outbox.
	var events int64
	require.NoError(t, f.db.Model(&models.Notification{}).Count(&events).Error)
	assert.EqualValues(t, 4, events)
}
