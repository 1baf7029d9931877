package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestConfigureLevel(t *testing.T) {
	var buf bytes.Buffer
	defer Configure("", "", &bytes.Buffer{})

	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"chatty", logrus.InfoLevel},
	}
	for _, tt := range tests {
		Configure(tt.in, "", &buf)
		if got := Log.GetLevel(); got != tt.want {
			t.Errorf("Configure(%q) level = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure("info", "JSON", &buf)
	defer Configure("", "", &bytes.Buffer{})

	Log.WithField("session_id", "abc").Info("Level loaded.")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if entry["msg"] != "Level loaded." || entry["session_id"] != "abc" {
		t.Errorf("unexpected entry %v", entry)
	}
}

func TestConfigureTextFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Configure("info", "text", &buf)
	defer Configure("", "", &bytes.Buffer{})

	Log.Debug("hidden")
	Log.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output %q", out)
	}
}
