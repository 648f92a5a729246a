package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(source, posted string) Record {
	return Record{
		Posted:   posted,
		Deadline: "n/a",
		Snippet:  "snippet for " + source,
		Portal:   "acme",
		Source:   source,
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "latest_rfps.json")
	records := []Record{
		record("https://x.test/a.pdf", "Jan 1, 2025"),
		record("https://x.test/b.pdf", "Feb 2, 2025"),
	}
	require.NoError(t, Save(path, records))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)

	bySource := make(map[string]Record, len(got))
	for _, r := range got {
		bySource[r.Source] = r
	}
	for _, want := range records {
		assert.Equal(t, want, bySource[want.Source])
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	got, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadCorruptFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	got, err := Load(path)
	assert.Empty(t, got)

	var corrupt *CorruptError
	require.True(t, errors.As(err, &corrupt))
	assert.Equal(t, path, corrupt.Path)
}

// Fresh records replace existing ones that share a source URL.
func TestMergeOverwrite(t *testing.T) {
	t.Parallel()

	existing := []Record{
		record("https://x.test/a.pdf", "old date"),
		record("https://x.test/b.pdf", "kept"),
	}
	fresh := []Record{
		record("https://x.test/a.pdf", "new date"),
		record("https://x.test/c.pdf", "added"),
	}

	got := Merge(existing, fresh)
	require.Len(t, got, 3)

	bySource := make(map[string]Record, len(got))
	for _, r := range got {
		bySource[r.Source] = r
	}
	assert.Equal(t, "new date", bySource["https://x.test/a.pdf"].Posted)
	assert.Equal(t, "kept", bySource["https://x.test/b.pdf"].Posted)
	assert.Equal(t, "added", bySource["https://x.test/c.pdf"].Posted)
}

func TestMergeEmptyInputs(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Merge(nil, nil))
	got := Merge(nil, []Record{record("https://x.test/a.pdf", "fresh only")})
	require.Len(t, got, 1)
}

func TestSaveEmptyCatalog(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, Save(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}
