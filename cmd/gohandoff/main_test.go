package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outputValues(t *testing.T, out string) []string {
	t.Helper()
	var values []string
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		id, value, ok := strings.Cut(line, " => ")
		require.True(t, ok, "unexpected output line %q", line)
		assert.True(t, strings.HasPrefix(id, "WorkerID("), "unexpected worker id %q", id)
		values = append(values, value)
	}
	return values
}

func TestRunDefaults(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run(nil, &stdout))

	values := outputValues(t, stdout.String())
	require.Len(t, values, 6)
	assert.Equal(t, "Bonjour DUBOIS", values[0])
	assert.Equal(t, `"Bonjour LAURENT"`, values[1])
	for _, v := range values[2:] {
		assert.Equal(t, "Bonjour SIMON", v)
	}
}

func TestRunWorkersFlag(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, run([]string{"--workers", "2", "--log-level", "error"}, &stdout))
	assert.Len(t, outputValues(t, stdout.String()), 4)
}

func TestRunRejectsBadFlags(t *testing.T) {
	var stdout bytes.Buffer
	assert.Error(t, run([]string{"--workers", "0"}, &stdout))
	assert.Error(t, run([]string{"--log-level", "loud"}, &stdout))
	assert.Error(t, run([]string{"--unknown"}, &stdout))
	assert.Empty(t, stdout.String())
}
