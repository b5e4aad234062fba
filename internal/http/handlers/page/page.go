// Package page contains the HTTP handlers that host the student list
// component in a browser.
//
// HANDLER PATTERN — THE CLOSURE / FACTORY PATTERN:
// ──────────────────────────────────────────────────
// Each exported function receives its dependencies once at startup and
// returns the http.HandlerFunc the router calls on every request:
//
//	router.HandleFunc("GET /", page.Mount(registry))
//
// A visit to / mounts one component and redirects to its page. That page
// re-renders the component on every request; while the fetch is still in
// flight it asks the browser to refresh itself, so the visitor sees the
// loading heading first and the table (or the error) once it settles.
package page

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-list/internal/mounts"
	"github.com/aanand-mishra/student-list/internal/studentlist"
	"github.com/aanand-mishra/student-list/internal/utils/response"
)

// Registry is what the handlers need from mounts.Registry.
type Registry interface {
	Mount(ctx context.Context) (string, *studentlist.Component)
	Get(id string) (*studentlist.Component, error)
	Unmount(id string) error
}

// RefreshSeconds is how often a loading page asks to be re-rendered.
const RefreshSeconds = 1

var shell = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>` + studentlist.Title + `</title>
{{- if .Loading }}
<meta http-equiv="refresh" content="{{ .Refresh }}">
{{- end }}
</head>
<body>
{{ .Body }}</body>
</html>
`))

type shellData struct {
	Loading bool
	Refresh int
	Body    template.HTML
}

// ─────────────────────────────────────────────────────────────────────────────
// Mount handles GET /
// Mounts a fresh component and redirects (303) to /mounts/{id}.
// ─────────────────────────────────────────────────────────────────────────────
func Mount(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, _ := registry.Mount(r.Context())
		slog.Info("student list mounted", slog.String("mount_id", id))

		http.Redirect(w, r, "/mounts/"+id, http.StatusSeeOther)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Show handles GET /mounts/{id}
// Renders the component's current state inside an HTML page.
//
// Error responses:
//
//	404 Not Found — unknown or unmounted id
//
// ─────────────────────────────────────────────────────────────────────────────
func Show(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		c, err := registry.Get(id)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		// One snapshot drives both the refresh decision and the body.
		state := c.State()

		err = response.WriteHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
			var body bytes.Buffer
			if err := studentlist.Render(&body, state); err != nil {
				return err
			}
			return shell.Execute(buf, shellData{
				Loading: state.Loading,
				Refresh: RefreshSeconds,
				// Render escapes all record text itself.
				Body: template.HTML(body.String()),
			})
		})
		if err != nil {
			slog.Error("error rendering student list",
				slog.String("mount_id", id),
				slog.String("error", err.Error()))
		}
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Unmount handles DELETE /mounts/{id}
//
// Success response (200 OK):
//
//	{ "status": "unmounted" }
//
// Error responses:
//
//	404 Not Found — unknown or already unmounted id
//
// ─────────────────────────────────────────────────────────────────────────────
func Unmount(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("unmounting student list", slog.String("mount_id", id))

		if err := registry.Unmount(id); err != nil {
			writeLookupError(w, id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "unmounted"})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Snapshot handles GET /api/mounts/{id}
// Returns the component's current state as JSON.
//
// Success response (200 OK), while loading or once the fetch succeeded:
//
//	{ "students": [ ... ], "loading": false, "failed": false }
//
// Once the fetch failed, "error" carries the message:
//
//	{ "students": [], "loading": false, "failed": true, "error": "Failed to fetch data" }
//
// ─────────────────────────────────────────────────────────────────────────────
func Snapshot(registry Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")

		c, err := registry.Get(id)
		if err != nil {
			writeLookupError(w, id, err)
			return
		}

		response.WriteJSON(w, http.StatusOK, c.State())
	}
}

func writeLookupError(w http.ResponseWriter, id string, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, mounts.ErrNotFound) {
		status = http.StatusNotFound
	} else {
		slog.Error("error looking up mount",
			slog.String("mount_id", id),
			slog.String("error", err.Error()))
	}
	response.WriteJSON(w, status, response.GeneralError(err))
}
