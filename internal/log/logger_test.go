package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelsGoToTheirWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters(&out, &errOut)

	l.Printf("toggled %s", "meal")
	l.Warnf("slow %d", 3)
	l.Errorf("store: %v", "boom")

	assert.Contains(t, out.String(), "INFO toggled meal")
	assert.Contains(t, out.String(), "WARN slow 3")
	assert.NotContains(t, out.String(), "boom")
	assert.Contains(t, errOut.String(), "ERROR store: boom")
}

func TestNew_WritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	l, err := New(dir)
	require.NoError(t, err)
	l.Printf("hello %s", "file")
	require.NoError(t, l.Close())

	data, err := os.ReadFile(filepath.Join(dir, "fitlife.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}

func TestGlobalLogger_SetDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	var out bytes.Buffer
	SetDefault(NewWithWriters(&out, &out))
	Println("webhook", " received")

	assert.Contains(t, out.String(), "webhook received")
}
