package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedThenSummary(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	var seedOut bytes.Buffer
	seed := NewSeedCommand()
	seed.Out = &seedOut
	require.NoError(t, seed.ParseFlags([]string{"-db", dbPath}))
	require.NoError(t, seed.Run())
	assert.Contains(t, seedOut.String(), "Imported 5 genres")

	var out bytes.Buffer
	summary := NewSummaryCommand()
	summary.Out = &out
	require.NoError(t, summary.ParseFlags([]string{"-db", dbPath}))
	require.NoError(t, summary.Run())

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.EqualValues(t, 6, got["book_count"])
	assert.EqualValues(t, 5, got["genre_count"])
	assert.EqualValues(t, 1, got["books_matching_search_count"])
	assert.Equal(t, "dahlia", got["search_term"])
}

func TestSummary_CustomTerm(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "catalog.db")

	seed := NewSeedCommand()
	seed.Out = &bytes.Buffer{}
	require.NoError(t, seed.ParseFlags([]string{"-db", dbPath}))
	require.NoError(t, seed.Run())

	var out bytes.Buffer
	summary := NewSummaryCommand()
	summary.Out = &out
	require.NoError(t, summary.ParseFlags([]string{"-db", dbPath, "-term", "zzz-no-match"}))
	require.NoError(t, summary.Run())

	var got map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.EqualValues(t, 0, got["books_matching_search_count"])
	assert.Equal(t, "zzz-no-match", got["search_term"])
}

func TestSummary_MissingDatabase(t *testing.T) {
	summary := NewSummaryCommand()
	require.NoError(t, summary.ParseFlags([]string{"-db", filepath.Join(t.TempDir(), "missing.db")}))

	err := summary.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestSeed_FromFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"genres": ["Poetry"],
		"authors": [{"key": "keats", "first_name": "John", "last_name": "Keats"}],
		"books": [{"title": "Odes", "isbn": "9780140424478", "author": "keats", "genres": ["Poetry"]}],
		"instances": [{"isbn": "9780140424478", "status": "a"}]
	}`), 0o644))

	var out bytes.Buffer
	seed := NewSeedCommand()
	seed.Out = &out
	require.NoError(t, seed.ParseFlags([]string{"-file", file, "-db", filepath.Join(dir, "catalog.db")}))
	require.NoError(t, seed.Run())
	assert.Contains(t, out.String(), "Imported 1 genres, 0 languages, 1 authors, 1 books, 1 copies")
}

func TestSeed_RejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "catalog.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"publishers": ["Penguin"]}`), 0o644))

	seed := NewSeedCommand()
	require.NoError(t, seed.ParseFlags([]string{"-file", file, "-db", filepath.Join(dir, "catalog.db")}))
	assert.Error(t, seed.Run())
}

func TestParseFlags_UnknownFlag(t *testing.T) {
	assert.Error(t, NewSummaryCommand().ParseFlags([]string{"-nope"}))
	assert.Error(t, NewSeedCommand().ParseFlags([]string{"-nope"}))
}
