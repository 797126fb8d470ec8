package services

import (
	"github.com/kwesi-koranteng/cityhub-backend/models"
)

// Visibility policy: anonymous viewers see approved projects only, any
// authenticated user sees every status. This mirrors the product decision
// that moderation state is hidden from visitors, not from members.

// CanView reports whether viewer may see a project in the given status.
// Pure function of viewer and status.
func CanView(viewer *models.Identity, status models.ProjectStatus) bool {
	if viewer != nil {
		return true
	}
	return status == models.StatusApproved
}

// CanModerate reports whether actor may transition status, edit or delete
// projects.
func CanModerate(actor *models.Identity) bool {
	return actor.IsAdmin()
}

// applyListVisibility forces the status filter for anonymous viewers so they
// cannot request non-approved listings.
func applyListVisibility(viewer *models.Identity, params models.ProjectListParams) models.ProjectListParams {
	if viewer == nil {
		params.Status = string(models.StatusApproved)
	}
	return params
}
