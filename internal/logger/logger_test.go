package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theuddeshya/Dynasty/internal/logger/console"
)

type recorder struct {
	levels []string
}

func (r *recorder) Debug(string, ...any) { r.levels = append(r.levels, "debug") }
func (r *recorder) Info(string, ...any)  { r.levels = append(r.levels, "info") }
func (r *recorder) Warn(string, ...any)  { r.levels = append(r.levels, "warn") }
func (r *recorder) Error(string, ...any) { r.levels = append(r.levels, "error") }
func (r *recorder) Fatal(string, ...any) { r.levels = append(r.levels, "fatal") }

func TestFanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	Init(a, b)
	t.Cleanup(func() { Init() })

	Debug("d")
	Info("i", "key", "value")
	Warn("w")
	Error("e")

	want := []string{"debug", "info", "warn", "error"}
	assert.Equal(t, want, a.levels)
	assert.Equal(t, want, b.levels)
}

func TestConsoleBackend(t *testing.T) {
	var buf bytes.Buffer
	Init(console.NewConsoleLogger(console.ConsoleLoggerParams{Output: &buf}))
	t.Cleanup(func() { Init() })

	Debug("hidden")
	Info("dataset loaded", "nodes", 12)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "dataset loaded")
	assert.Contains(t, out, "nodes=12")
}
