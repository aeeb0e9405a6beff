package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"monad-token-registry/internal/validate"
)

type stubProbe struct {
	contentType string
}

func (p *stubProbe) ContentType(ctx context.Context, url string) (string, error) {
	return p.contentType, nil
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeRecord(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

const goodRecord = `{
  "chainId": 143,
  "address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
  "name": "Good",
  "symbol": "GOOD",
  "decimals": 18,
  "logoURI": "https://example.com/logo.png"
}`

const badRecord = `{
  "chainId": 1,
  "address": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
  "name": "Bad",
  "symbol": "BAD",
  "decimals": 18,
  "logoURI": "https://example.com/logo.png"
}`

func withStubProbe(t *testing.T) {
	t.Helper()
	orig := newLogoProbe
	newLogoProbe = func() validate.LogoProbe { return &stubProbe{contentType: "image/png"} }
	t.Cleanup(func() { newLogoProbe = orig })
}

func TestValidateCommand(t *testing.T) {
	withStubProbe(t)

	t.Run("all valid", func(t *testing.T) {
		dir := t.TempDir()
		writeRecord(t, dir, "GOOD.json", goodRecord)

		out, err := runCommand(t, "validate", "--dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "GOOD.json: ok")
	})

	t.Run("invalid records found", func(t *testing.T) {
		dir := t.TempDir()
		writeRecord(t, dir, "BAD.json", badRecord)
		writeRecord(t, dir, "GOOD.json", goodRecord)

		out, err := runCommand(t, "validate", "--dir", dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, errInvalidRecords)
		assert.Contains(t, out, "BAD.json: wrong chainId")
		assert.Contains(t, out, "GOOD.json: ok")
	})

	t.Run("empty directory is nothing to do", func(t *testing.T) {
		dir := t.TempDir()
		out, err := runCommand(t, "validate", "--dir", dir)
		require.NoError(t, err)
		assert.Contains(t, out, "No token records found")
	})

	t.Run("missing directory is fatal", func(t *testing.T) {
		_, err := runCommand(t, "validate", "--dir", filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, errInvalidRecords)
	})
}

func TestGenerateCommand(t *testing.T) {
	t.Run("writes sorted token list", func(t *testing.T) {
		dir := t.TempDir()
		writeRecord(t, dir, "ZZZ.json", goodRecord)
		writeRecord(t, dir, "AAA.json", goodRecord)
		outPath := filepath.Join(t.TempDir(), "tokenlist.json")

		out, err := runCommand(t, "generate", "--dir", dir, "-o", outPath)
		require.NoError(t, err)
		assert.Contains(t, out, "2 tokens")

		_, err = os.Stat(outPath)
		assert.NoError(t, err)
	})

	t.Run("parse failure writes nothing", func(t *testing.T) {
		dir := t.TempDir()
		writeRecord(t, dir, "AAA.json", `{broken`)
		outPath := filepath.Join(t.TempDir(), "tokenlist.json")

		_, err := runCommand(t, "generate", "--dir", dir, "-o", outPath)
		require.Error(t, err)

		_, statErr := os.Stat(outPath)
		assert.True(t, os.IsNotExist(statErr), "no partial output on failure")
	})

	t.Run("empty directory is nothing to do", func(t *testing.T) {
		out, err := runCommand(t, "generate", "--dir", t.TempDir(),
			"-o", filepath.Join(t.TempDir(), "tokenlist.json"))
		require.NoError(t, err)
		assert.Contains(t, out, "No token records found")
	})
}

func TestAddCommand_RejectsBadAddress(t *testing.T) {
	_, err := runCommand(t, "add", "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid address")
}
