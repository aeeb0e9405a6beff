package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"monad-token-registry/internal/validate"
)

// errInvalidRecords marks a run that found invalid staged records, as
// opposed to one that could not run at all.
var errInvalidRecords = errors.New("invalid records found")

// newLogoProbe builds the logo reachability checker. Tests swap it out.
var newLogoProbe = func() validate.LogoProbe {
	return validate.NewHTTPProbe(nil)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate every staged token record",
	Long: `Check every staged record file for required fields, chain id, address
format, logo reachability and decimals range. All files are checked;
each verdict is reported.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	v := validate.New(cfg.ChainID, newLogoProbe())
	results, err := v.ValidateDir(ctx, cfg.RecordDir)
	if err != nil {
		return fmt.Errorf("record directory %s: %w", cfg.RecordDir, err)
	}
	if len(results) == 0 {
		fmt.Fprintf(out, "No token records found in %s\n", cfg.RecordDir)
		return nil
	}

	fmt.Fprintf(out, "Validating %d files...\n\n", len(results))
	invalid := 0
	for _, r := range results {
		if r.Valid() {
			fmt.Fprintf(out, "%s: ok\n", r.File)
			continue
		}
		invalid++
		fmt.Fprintf(out, "%s: %v\n", r.File, r.Err)
	}

	if invalid > 0 {
		return fmt.Errorf("%w: %d of %d", errInvalidRecords, invalid, len(results))
	}
	return nil
}
