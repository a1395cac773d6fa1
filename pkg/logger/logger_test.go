package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProdLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("prod", &buf).Info("train created", "number", "001A")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "train created", entry["msg"])
	assert.Equal(t, "001A", entry["number"])
}

func TestDevLoggerWritesTextWithDebug(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter("dev", &buf).Debug("lookup", "username", "admin")

	out := buf.String()
	assert.True(t, strings.Contains(out, "level=DEBUG"))
	assert.True(t, strings.Contains(out, "username=admin"))
}
