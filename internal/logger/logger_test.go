package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{" WARN ", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"Error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.name))
		})
	}
}

func TestPrefixedLoggers(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stderr) })

	level := Logger.GetLevel()
	SetLevel("debug")
	SetLevel("")
	t.Cleanup(func() { Logger.SetLevel(level) })
	assert.Equal(t, log.DebugLevel, Logger.GetLevel(), "empty name keeps the level")

	Native().Info("backend ready")
	Script().Warn("slow handler", "kind", "view-created")

	out := buf.String()
	assert.Contains(t, out, "native")
	assert.Contains(t, out, "backend ready")
	assert.Contains(t, out, "script")
	assert.Contains(t, out, "kind=view-created")
}
