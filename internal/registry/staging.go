package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrTokenExists is returned when a token's staging directory is already
// present. Staged records are never overwritten automatically.
var ErrTokenExists = errors.New("token directory already exists")

// WriteStagedRecord creates <dir>/<SYMBOL>/data.json for a freshly
// fetched record and returns the token directory path.
func WriteStagedRecord(dir string, rec *TokenRecord) (string, error) {
	if _, err := os.Stat(dir); err != nil {
		return "", fmt.Errorf("record directory: %w", err)
	}

	tokenDir := filepath.Join(dir, rec.Symbol)
	if _, err := os.Stat(tokenDir); err == nil {
		return "", fmt.Errorf("%w: %s", ErrTokenExists, tokenDir)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(tokenDir, 0o755); err != nil {
		return "", fmt.Errorf("create token directory: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filepath.Join(tokenDir, "data.json"), data, 0o644); err != nil {
		return "", fmt.Errorf("write record: %w", err)
	}
	return tokenDir, nil
}
