package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		env       string
		json      bool
		wantDebug bool
		wantInfo  bool
	}{
		{env: "prod", json: true, wantDebug: false, wantInfo: true},
		{env: "staging", json: true, wantDebug: true, wantInfo: true},
		{env: "dev", json: false, wantDebug: true, wantInfo: true},
		{env: "", json: false, wantDebug: true, wantInfo: true},
		{env: "quiet", json: false, wantDebug: false, wantInfo: false},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			var buf bytes.Buffer
			log := Setup(tt.env, &buf)

			log.Debug("debug line")
			assert.Equal(t, tt.wantDebug, strings.Contains(buf.String(), "debug line"))

			buf.Reset()
			log.Info("student list loaded", "count", 10)
			if !tt.wantInfo {
				assert.Empty(t, buf.String())
				return
			}

			if tt.json {
				var entry map[string]any
				require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
				assert.Equal(t, "student list loaded", entry["msg"])
				assert.EqualValues(t, 10, entry["count"])
			} else {
				assert.Contains(t, buf.String(), `msg="student list loaded" count=10`)
			}
		})
	}
}
