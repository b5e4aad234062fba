// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles:
// the HTTP client, the component, storage, and handlers can all import
// types without depending on each other.
package types

import "time"

// Student is one user record as served by the remote directory.
//
// json:"..." / yaml:"..." match the keys of the remote JSON payload and
// keep the CLI's YAML output in the same shape.
//
// The id is the row key of the rendered table. 0 is a valid id; the
// directory client checks that the key is present in the payload, not
// that it is non-zero. Everything else may be blank.
type Student struct {
	ID      int      `json:"id"                yaml:"id"`
	Name    string   `json:"name"              yaml:"name"`
	Email   string   `json:"email"             yaml:"email"`
	Address *Address `json:"address,omitempty" yaml:"address,omitempty"`
}

// Address is the optional nested address object. Only the city is used.
type Address struct {
	City string `json:"city,omitempty" yaml:"city,omitempty"`
}

// City returns the student's city, or "" when the address is absent.
func (s Student) City() string {
	if s.Address == nil {
		return ""
	}
	return s.Address.City
}

// Outcome status values.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Outcome is the audit record of one settled mount: what the fetch
// produced, not the data itself.
type Outcome struct {
	MountID    string    `json:"mount_id"`
	Status     string    `json:"status"`
	Count      int       `json:"count"`
	Error      string    `json:"error,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
	SettledAt  time.Time `json:"settled_at"`
}
