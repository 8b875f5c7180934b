package auth

import "errors"

// ErrNotOwner is returned when a caller is authenticated but does not own
// the resource being accessed. Handlers map it to 403.
var ErrNotOwner = errors.New("caller does not own this resource")

// CheckOwnership is the single authorization predicate applied to
// owner-scoped resources: the resource's owner id against the caller's id.
func CheckOwnership(ownerID, callerID uint) error {
	if ownerID != callerID {
		return ErrNotOwner
	}
	return nil
}
