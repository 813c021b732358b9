package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"flight_report/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter writes the number of flights and remembers its calls
type recordingWriter struct {
	calls int
	err   error
}

func (w *recordingWriter) Write(flights []models.AcceptedFlight, path string) error {
	w.calls++
	if w.err != nil {
		return w.err
	}
	return os.WriteFile(path, []byte{byte('0' + len(flights))}, 0644)
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestPublish_SuffixNeverOverwrites(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "extracted_flight_info.xlsx")
	touch(t, base)
	touch(t, filepath.Join(dir, "extracted_flight_info_1.xlsx"))

	p := NewPublisher(&recordingWriter{}, ConflictSuffix)
	path, err := p.Publish(nil, base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "extracted_flight_info_2.xlsx"), path)

	for _, old := range []string{base, filepath.Join(dir, "extracted_flight_info_1.xlsx")} {
		data, err := os.ReadFile(old)
		require.NoError(t, err)
		assert.Equal(t, "existing", string(data))
	}
}

func TestPublish_DefaultPolicyIsSuffix(t *testing.T) {
	p := NewPublisher(&recordingWriter{}, "")
	assert.Equal(t, ConflictSuffix, p.policy)
}

func TestPublish_ConsecutiveRuns(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "output.csv")
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	suffix := NewPublisher(&recordingWriter{}, ConflictSuffix)
	suffix.now = fixedClock(now)

	first, err := suffix.Publish([]models.AcceptedFlight{{}}, base)
	require.NoError(t, err)
	assert.Equal(t, base, first)

	second, err := suffix.Publish([]models.AcceptedFlight{{}, {}}, base)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "output_1.csv"), second)

	rotate := NewPublisher(&recordingWriter{}, ConflictRotate)
	rotate.now = fixedClock(now)
	third, err := rotate.Publish([]models.AcceptedFlight{{}, {}, {}}, base)
	require.NoError(t, err)
	assert.Equal(t, base, third)

	preserved := filepath.Join(dir, "output_20261019_090000.csv")
	data, err := os.ReadFile(preserved)
	require.NoError(t, err)
	assert.Equal(t, "1", string(data), "first artifact kept under a timestamped name")

	data, err = os.ReadFile(filepath.Join(dir, "output_1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "2", string(data))

	data, err = os.ReadFile(base)
	require.NoError(t, err)
	assert.Equal(t, "3", string(data))
}

func TestPublish_WriterFailureLeavesNoArtifact(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "output.csv")

	w := &recordingWriter{err: errors.New("disk full")}
	_, err := NewPublisher(w, ConflictSuffix).Publish(nil, base)
	require.Error(t, err)
	assert.Equal(t, 1, w.calls)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestPublish_CreatesParentDirectory(t *testing.T) {
	base := filepath.Join(t.TempDir(), "reports", "2026", "output.csv")
	path, err := NewPublisher(&recordingWriter{}, ConflictSuffix).Publish(nil, base)
	require.NoError(t, err)
	assert.Equal(t, base, path)
	assert.FileExists(t, base)
}
