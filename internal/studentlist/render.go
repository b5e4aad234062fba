package studentlist

import (
	"html/template"
	"io"
)

const (
	LoadingText = "Loading student data..."
	Title       = "Student List"
)

// One template, three branches, same order as the state checks.
var view = template.Must(template.New("studentlist").Parse(
	`{{- if .Loading -}}
<h3>` + LoadingText + `</h3>
{{- else if .Failed -}}
<h3>Error: {{ .Err }}</h3>
{{- else -}}
<div style="padding: 20px">
<h2>` + Title + `</h2>
<table border="1" cellpadding="10">
<thead>
<tr><th>Name</th><th>Email</th><th>City</th></tr>
</thead>
<tbody>
{{- range .Students }}
<tr data-key="{{ .ID }}"><td>{{ .Name }}</td><td>{{ .Email }}</td><td>{{ .City }}</td></tr>
{{- end }}
</tbody>
</table>
</div>
{{- end }}
`))

// Render writes the HTML for s. It reads nothing but s, so rendering the
// same state twice gives the same bytes.
func Render(w io.Writer, s State) error {
	return view.Execute(w, s)
}
