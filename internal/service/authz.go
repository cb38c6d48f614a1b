// Package service contains application services that orchestrate domain
// logic, persistence, and transactions on behalf of the API layer.
package service

import (
	"errors"

	"github.com/google/uuid"
)

// ErrNotOwned indicates the caller does not own the resource they are
// operating on. Every ownership check in the application funnels through
// RequireOwner so the rule lives in exactly one place.
var ErrNotOwned = errors.New("resource not owned by caller")

// RequireOwner returns ErrNotOwned unless the caller is the owner of the
// resource. Callers treat the error as an authorization failure, distinct
// from not-found.
func RequireOwner(ownerID, callerID uuid.UUID) error {
	if ownerID != callerID {
		return ErrNotOwned
	}
	return nil
}
