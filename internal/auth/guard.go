package auth

import (
	"github.com/sakif/review-hub/internal/apperror"
)

// Authorize is the path-level ownership check: it compares the verified
// identity against the owner id asserted by the request path (e.g. the
// {userID} segment of /users/{userID}/reviews/{reviewID}).
//
// It deliberately does NOT look up the target resource. The caller is
// responsible for the resource-level check — a store query filtering on
// both the resource id and the owner id, whose empty result is reported as
// NotFound. Keeping the two checks separate means a 403 only ever comes
// from here, and a 404 only ever from the store, so a mismatched owner id
// in the path cannot be used to probe for another user's resources.
func Authorize(identity Identity, claimedOwnerID int64) error {
	if identity.ID != claimedOwnerID {
		return apperror.Forbidden("You are not authorized to perform this action")
	}
	return nil
}
