package testutil_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/computefp/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/computefp/internal/testutil"
)

func TestRecordingLogger(t *testing.T) {
	log := testutil.NewRecordingLogger()
	var _ logging.Logger = log

	log.Info("started", logging.String("run_id", "r1"))
	child := log.Named("watch").With(logging.String("file", "a.smi"))
	child.Error("Conversion failed", logging.Err(errors.New("boom")))

	entries := log.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0].Level)
	assert.Equal(t, "r1", entries[0].Fields["run_id"])

	e, ok := log.Find("error", "Conversion failed")
	require.True(t, ok)
	assert.Equal(t, "watch", e.Logger)
	assert.Equal(t, "a.smi", e.Fields["file"])
	assert.Equal(t, "boom", e.Fields["error"])

	assert.False(t, log.HasMessage("info", "Conversion failed"))
}

func TestWriteFile(t *testing.T) {
	path := testutil.WriteFile(t, t.TempDir(), "in.smi", "CCO\n")
	assert.FileExists(t, path)
}

//Personal.AI order the ending
