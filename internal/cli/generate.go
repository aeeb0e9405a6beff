package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"monad-token-registry/internal/registry"
)

var generateOutput string

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Assemble staged records into the token list document",
	Long: `Read every staged record file, in filename order, and write the full
token list document with fresh generation metadata. Any unparsable
record aborts the run; no partial output is written.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o",
		"tokenlist-mainnet.json", "output file for the generated token list")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	agg := registry.NewAggregator(cfg.List)
	reg, err := agg.Build(cfg.RecordDir)
	if errors.Is(err, registry.ErrNoRecords) {
		fmt.Fprintf(out, "No token records found in %s\n", cfg.RecordDir)
		return nil
	}
	if err != nil {
		return err
	}

	if err := reg.WriteFile(generateOutput); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %s with %d tokens\n", generateOutput, len(reg.Tokens))
	return nil
}
