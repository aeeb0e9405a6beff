package registry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMeta() ListMeta {
	return ListMeta{
		Name:     "Monad Mainnet",
		LogoURI:  "https://example.com/monad.svg",
		Keywords: []string{"monad mainnet"},
		Version:  Version{Major: 0, Minor: 0, Patch: 1},
	}
}

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

const recordTemplate = `{
  "chainId": 143,
  "address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
  "name": "%NAME%",
  "symbol": "%NAME%",
  "decimals": 18,
  "logoURI": "https://example.com/logo.png"
}`

func record(name string) string {
	return strings.ReplaceAll(recordTemplate, "%NAME%", name)
}

func TestBuild_SortedByFilename(t *testing.T) {
	dir := t.TempDir()
	// Written in reverse order on purpose.
	writeFile(t, dir, "ZZZ.json", record("ZZZ"))
	writeFile(t, dir, "AAA.json", record("AAA"))

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	agg := NewAggregator(testMeta()).WithClock(func() time.Time { return fixed })

	reg, err := agg.Build(dir)
	require.NoError(t, err)

	require.Len(t, reg.Tokens, 2)
	assert.Equal(t, "AAA", reg.Tokens[0].Symbol)
	assert.Equal(t, "ZZZ", reg.Tokens[1].Symbol)

	assert.Equal(t, "Monad Mainnet", reg.Name)
	assert.Equal(t, "2025-06-01T12:00:00Z", reg.Timestamp)
	assert.Equal(t, Version{Major: 0, Minor: 0, Patch: 1}, reg.Version)
}

func TestBuild_RepeatRunsDifferOnlyInTimestamp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AAA.json", record("AAA"))

	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	first, err := NewAggregator(testMeta()).WithClock(func() time.Time { return t1 }).Build(dir)
	require.NoError(t, err)
	second, err := NewAggregator(testMeta()).WithClock(func() time.Time { return t2 }).Build(dir)
	require.NoError(t, err)

	assert.NotEqual(t, first.Timestamp, second.Timestamp)
	second.Timestamp = first.Timestamp
	assert.Equal(t, first, second)
}

func TestBuild_JSONCRecord(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "WMON.jsonc", `{
  // wrapped native token
  "chainId": 143,
  "address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
  "name": "Wrapped Monad",
  "symbol": "WMON",
  "decimals": 18,
  "logoURI": "https://example.com/wmon.png",
}`)

	reg, err := NewAggregator(testMeta()).Build(dir)
	require.NoError(t, err)
	require.Len(t, reg.Tokens, 1)
	assert.Equal(t, "Wrapped Monad", reg.Tokens[0].Name)
}

func TestBuild_ParseFailureAbortsWholeRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AAA.json", record("AAA"))
	writeFile(t, dir, "BBB.json", `{broken`)

	_, err := NewAggregator(testMeta()).Build(dir)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "BBB.json", parseErr.File)
}

func TestBuild_EmptyAndMissingDirectories(t *testing.T) {
	t.Run("empty directory is nothing to do", func(t *testing.T) {
		_, err := NewAggregator(testMeta()).Build(t.TempDir())
		assert.ErrorIs(t, err, ErrNoRecords)
	})

	t.Run("missing directory is a setup failure", func(t *testing.T) {
		_, err := NewAggregator(testMeta()).Build(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrNoRecords)
	})

	t.Run("unrecognized extensions are ignored", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "README.md", "# not a record")
		_, err := NewAggregator(testMeta()).Build(dir)
		assert.ErrorIs(t, err, ErrNoRecords)
	})
}

func TestRegistry_WriteFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "AAA.json", record("AAA"))

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	reg, err := NewAggregator(testMeta()).WithClock(func() time.Time { return fixed }).Build(dir)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "tokenlist-mainnet.json")
	require.NoError(t, reg.WriteFile(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, len(data) > 0 && data[len(data)-1] == '\n', "trailing newline")

	// Key order is fixed by the struct layout.
	text := string(data)
	order := []string{`"name"`, `"logoURI"`, `"keywords"`, `"timestamp"`, `"tokens"`, `"version"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(text, key)
		require.GreaterOrEqual(t, idx, 0, "missing key %s", key)
		assert.Greater(t, idx, last, "key %s out of order", key)
		last = idx
	}

	var round Registry
	require.NoError(t, json.Unmarshal(data, &round))
	assert.Equal(t, *reg, round)
}
