package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tailscale/hujson"
)

// ParseError reports a staged record file that could not be decoded.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IsRecordFile reports whether name has a recognized staged metadata
// extension. Records may carry comments, so .jsonc is accepted alongside
// plain .json.
func IsRecordFile(name string) bool {
	switch filepath.Ext(name) {
	case ".json", ".jsonc":
		return true
	}
	return false
}

// ListRecordFiles returns the staged record files directly under dir,
// sorted by filename. The sort keeps aggregation output deterministic
// regardless of filesystem listing order.
func ListRecordFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsRecordFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// decodeJSONC strips comments and trailing commas before the strict JSON
// pass.
func decodeJSONC(data []byte, v any) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(std, v)
}

// DecodeRecordFile reads one staged record into its typed form.
func DecodeRecordFile(path string) (*TokenRecord, error) {
	var rec TokenRecord
	if err := decodeFileInto(path, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// DecodeRawFile reads one staged record preserving key presence, for the
// validator's required-field check.
func DecodeRawFile(path string) (*RawRecord, error) {
	var rec RawRecord
	if err := decodeFileInto(path, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func decodeFileInto(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ParseError{File: filepath.Base(path), Err: err}
	}
	if err := decodeJSONC(data, v); err != nil {
		return &ParseError{File: filepath.Base(path), Err: err}
	}
	return nil
}
