package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_WritesToRunFile(t *testing.T) {
	log, err := NewLogger("test-component")
	if err != nil {
		t.Skipf("file logging unavailable in this environment: %v", err)
	}
	defer log.Close()

	log.Infof("hello %s", "world")
	log.Debugf("debug detail")
	log.Warnf("warn detail")
	log.Errorf("error detail")

	require.NotEmpty(t, log.LogPath())
	data, err := os.ReadFile(log.LogPath())
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "[test-component]")
	assert.Contains(t, content, "[INFO] hello world")
	assert.Contains(t, content, "[DEBUG] debug detail")
	assert.Contains(t, content, "[WARN] warn detail")
	assert.Contains(t, content, "[ERROR] error detail")
}

func TestNewLogger_SharedRunID(t *testing.T) {
	a, _ := NewLogger("component-a")
	defer a.Close()
	b, _ := NewLogger("component-b")
	defer b.Close()

	assert.Equal(t, a.RunID(), b.RunID())
	assert.NotEmpty(t, a.RunID())
	assert.False(t, strings.ContainsAny(a.RunID(), " /"))
}

func TestLogger_CloseIsIdempotent(t *testing.T) {
	log, err := NewLogger("closer")
	if err != nil {
		t.Skipf("file logging unavailable: %v", err)
	}

	require.NoError(t, log.Close())
	assert.NoError(t, log.Close())
}

func TestLogger_WriterNeverNil(t *testing.T) {
	log, _ := NewLogger("writer")
	defer log.Close()
	assert.NotNil(t, log.Writer())
}
