package services

import (
	"context"

	"assethub/src/models"
	"assethub/src/repositories"
	"assethub/src/utils"
)

// The cross-entity invariants live here as named checks so every mutation
// path calls the same rule instead of re-deriving it inline.

// checkSameLocation verifies asset, assigner and assignee share one location.
func checkSameLocation(asset *models.Asset, assigner, assignee *models.User) error {
	if asset.LocationID != assigner.LocationID || asset.LocationID != assignee.LocationID {
		return utils.LocationMismatch("asset, assigner and assignee must share one location")
	}
	return nil
}

// checkNoOtherWaitingAssignment enforces the at-most-one non-deleted WAITING
// assignment per asset rule. excludeID skips the assignment being edited so a
// self-reference stays valid.
func checkNoOtherWaitingAssignment(ctx context.Context, assignments repositories.AssignmentRepository, assetID, excludeID string) error {
	exists, err := assignments.ExistsWaitingForAsset(ctx, assetID, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return utils.Conflict("asset already has a waiting assignment")
	}
	return nil
}

// checkNoActiveReturn enforces the at-most-one active returning request per
// assignment rule.
func checkNoActiveReturn(ctx context.Context, requests repositories.ReturningRequestRepository, assignmentID string) error {
	exists, err := requests.ExistsActiveForAssignment(ctx, assignmentID)
	if err != nil {
		return err
	}
	if exists {
		return utils.Conflict("assignment already has an active returning request")
	}
	return nil
}

// checkAssetDeletable verifies the asset is not assigned and was never
// historically assigned, soft-deleted assignments included.
func checkAssetDeletable(ctx context.Context, assignments repositories.AssignmentRepository, asset *models.Asset) error {
	if asset.Status == models.AssetAssigned {
		return utils.InvalidState("cannot delete an asset that is currently assigned")
	}
	hasHistory, err := assignments.ExistsForAsset(ctx, asset.ID)
	if err != nil {
		return err
	}
	if hasHistory {
		return utils.Conflict("cannot delete an asset with historical assignments; edit it to Not available or Recycled instead")
	}
	return nil
}

// checkAdmin guards admin-only operations.
func checkAdmin(actor models.User) error {
	if !actor.IsAdmin() {
		return utils.Forbidden("admin role required")
	}
	return nil
}
