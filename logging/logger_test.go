package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"projecthub/config"

	"github.com/sirupsen/logrus"
)

func TestFormatter(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&Formatter{SystemName: "test"})

	logger.WithFields(logrus.Fields{"status": 201, "method": "POST"}).Info("request")

	line := buf.String()
	for _, want := range []string{"source=test", "level=INFO", `msg="request"`, "method=POST status=201", "event_id="} {
		if !strings.Contains(line, want) {
			t.Errorf("%q missing %q", line, want)
		}
	}
	if !strings.HasSuffix(line, "\n") {
		t.Error("entry not newline terminated")
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "api.log")
	logger, err := New(&config.Config{LogFile: path, LogLevel: logrus.WarnLevel})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("dropped")
	logger.Warn("kept")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("log file = %q", data)
	}
}
