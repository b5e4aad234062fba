// Package storage defines the Storage interface: a contract that any
// database backend must satisfy to keep the outcome history.
//
// Handlers and the mount registry depend only on this interface, so tests
// can pass an in-memory SQLite database (":memory:") or a fake.
//
// The history is an audit trail of how each mount settled. It is never
// read back to render a student list.
package storage

import (
	"errors"

	"github.com/aanand-mishra/student-list/internal/types"
)

// ErrNotFound is returned (wrapped) when no outcome matches a mount id.
var ErrNotFound = errors.New("outcome not found")

// Storage is the database contract.
type Storage interface {
	// RecordOutcome stores the settled result of one mount.
	RecordOutcome(outcome types.Outcome) error

	// GetOutcomeByID fetches the outcome recorded for a mount id.
	// Returns ErrNotFound (wrapped) if there is none.
	GetOutcomeByID(mountID string) (types.Outcome, error)

	// GetOutcomes returns every recorded outcome, newest first.
	// Returns an empty slice (not nil) if there are none.
	GetOutcomes() ([]types.Outcome, error)
}
