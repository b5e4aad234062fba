// Package router wires every route of the HTTP host onto one ServeMux.
//
// Route table:
//
//	GET    /                   → mount a component, redirect to its page
//	GET    /mounts/{id}        → render the component as HTML
//	DELETE /mounts/{id}        → unmount the component
//	GET    /api/mounts/{id}    → component state as JSON
//	GET    /api/outcomes       → outcome history
//	GET    /api/outcomes/{id}  → one outcome
package router

import (
	"net/http"

	"github.com/aanand-mishra/student-list/internal/http/handlers/outcome"
	"github.com/aanand-mishra/student-list/internal/http/handlers/page"
	"github.com/aanand-mishra/student-list/internal/storage"
)

// New returns the application's router.
func New(registry page.Registry, store storage.Storage) *http.ServeMux {
	router := http.NewServeMux()

	// "GET /{$}" matches only the root, not every unmatched path.
	router.HandleFunc("GET /{$}", page.Mount(registry))
	router.HandleFunc("GET /mounts/{id}", page.Show(registry))
	router.HandleFunc("DELETE /mounts/{id}", page.Unmount(registry))
	router.HandleFunc("GET /api/mounts/{id}", page.Snapshot(registry))

	router.HandleFunc("GET /api/outcomes", outcome.GetList(store))
	router.HandleFunc("GET /api/outcomes/{id}", outcome.GetByID(store))

	return router
}
