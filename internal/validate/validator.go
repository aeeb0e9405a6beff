// Package validate checks staged token records against registry policy.
package validate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"monad-token-registry/internal/evm"
	"monad-token-registry/internal/registry"
)

// Validation errors, one per check.
var (
	ErrMissingField       = errors.New("missing required field")
	ErrWrongChain         = errors.New("wrong chainId")
	ErrLogoNotImage       = errors.New("logoURI is not a reachable image")
	ErrDecimalsOutOfRange = errors.New("decimals out of range")
)

// Registry policy bounds for decimals. The fetch path deliberately does
// not enforce these: fetch records ledger truth, validation enforces
// registry policy.
const (
	MinDecimals = 6
	MaxDecimals = 36
)

// Validator checks one staged record at a time.
type Validator struct {
	chainID int64
	probe   LogoProbe
}

// New creates a validator for the given chain id.
func New(chainID int64, probe LogoProbe) *Validator {
	return &Validator{chainID: chainID, probe: probe}
}

// Validate checks rec in a fixed order and stops at the first failure:
// required fields, chainId, address grammar, logo reachability and
// content type, decimals range. The order is part of the contract;
// diagnostics for a multiply-invalid record always name the first
// failing check.
func (v *Validator) Validate(ctx context.Context, rec *registry.RawRecord) error {
	var missing []string
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"chainId", rec.ChainID != nil},
		{"address", rec.Address != nil},
		{"name", rec.Name != nil},
		{"symbol", rec.Symbol != nil},
		{"decimals", rec.Decimals != nil},
		{"logoURI", rec.LogoURI != nil},
	} {
		if !f.ok {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}

	if *rec.ChainID != v.chainID {
		return fmt.Errorf("%w: got %d, want %d", ErrWrongChain, *rec.ChainID, v.chainID)
	}

	if !evm.IsWellFormed(*rec.Address) {
		return fmt.Errorf("%w: %s", evm.ErrInvalidAddress, *rec.Address)
	}

	if err := v.checkLogo(ctx, *rec.LogoURI); err != nil {
		return err
	}

	if *rec.Decimals < MinDecimals || *rec.Decimals > MaxDecimals {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrDecimalsOutOfRange, *rec.Decimals, MinDecimals, MaxDecimals)
	}

	return nil
}

func (v *Validator) checkLogo(ctx context.Context, url string) error {
	ct, err := v.probe.ContentType(ctx, url)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLogoNotImage, url, err)
	}
	if !isImageContentType(ct) {
		return fmt.Errorf("%w: %s (content-type %q)", ErrLogoNotImage, url, ct)
	}
	return nil
}

// ValidateFile loads one staged record and validates it. Decode failures
// surface as *registry.ParseError.
func (v *Validator) ValidateFile(ctx context.Context, path string) error {
	rec, err := registry.DecodeRawFile(path)
	if err != nil {
		return err
	}
	return v.Validate(ctx, rec)
}

// Result pairs a staged file with its verdict.
type Result struct {
	File string
	Err  error
}

// Valid reports whether the record passed every check.
func (r Result) Valid() bool { return r.Err == nil }

// ValidateDir checks every staged record in dir, in filename order, and
// reports all verdicts. One bad record never hides the next: validation
// is a diagnostic pass, not a gate.
func (v *Validator) ValidateDir(ctx context.Context, dir string) ([]Result, error) {
	files, err := registry.ListRecordFiles(dir)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(files))
	for _, f := range files {
		results = append(results, Result{
			File: filepath.Base(f),
			Err:  v.ValidateFile(ctx, f),
		})
	}
	return results, nil
}
