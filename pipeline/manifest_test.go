package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipeworks/simmer/errors"
)

func TestManifest_RecordsStepsInOrder(t *testing.T) {
	m := NewManifest()
	require.NotEmpty(t, m.RunID)

	m.Record("scan:recipes", StepSuccess, 120*time.Millisecond, nil)
	m.Record("normalize:recipes", StepFailed, 5*time.Millisecond, errors.New("boom"))
	m.Finish(false)

	require.Len(t, m.Steps, 2)
	assert.Equal(t, "scan:recipes", m.Steps[0].Name)
	assert.Equal(t, int64(120), m.Steps[0].ElapsedMS)
	assert.Empty(t, m.Steps[0].Error)
	assert.Equal(t, StepFailed, m.Steps[1].Status)
	assert.Equal(t, "boom", m.Steps[1].Error)
	assert.False(t, m.Success)
}

func TestManifest_WriteRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := NewManifest()
	m.Record("validate", StepSuccess, time.Second, nil)
	m.Finish(true)
	require.NoError(t, m.Write(dir))

	data, err := os.ReadFile(filepath.Join(dir, "run_report_"+m.RunID+".json"))
	require.NoError(t, err)

	var decoded RunManifest
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, m.RunID, decoded.RunID)
	assert.True(t, decoded.Success)
	require.Len(t, decoded.Steps, 1)
	assert.Equal(t, int64(1000), decoded.Steps[0].ElapsedMS)
}

func TestManifest_DistinctRunIDs(t *testing.T) {
	assert.NotEqual(t, NewManifest().RunID, NewManifest().RunID)
}
