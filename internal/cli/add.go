package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"monad-token-registry/internal/evm"
	"monad-token-registry/internal/fetch"
	"monad-token-registry/internal/registry"
)

var addCmd = &cobra.Command{
	Use:   "add [address]",
	Short: "Fetch a token's on-chain metadata and stage it",
	Long: `Fetch name, symbol and decimals for the given token contract from the
ledger endpoint and create <dir>/<SYMBOL>/data.json. Prompts for the
contract address when none is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	raw := ""
	if len(args) > 0 {
		raw = strings.TrimSpace(args[0])
	}
	if raw == "" {
		fmt.Fprint(out, "Enter token contract address: ")
		scanner := bufio.NewScanner(cmd.InOrStdin())
		if scanner.Scan() {
			raw = strings.TrimSpace(scanner.Text())
		}
	}
	if raw == "" {
		return errors.New("no address provided")
	}

	addr, err := evm.ValidateAndNormalize(raw)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Checksummed address: %s\n", addr)

	client, err := evm.Dial(ctx, cfg.RPCURL)
	if err != nil {
		return err
	}
	logger.Debug("connected", "endpoint", cfg.RPCURL)

	fmt.Fprintf(out, "Fetching token data from %s...\n", addr)
	fetcher := fetch.New(client, cfg.ChainID, cfg.Retry, logger)
	rec, err := fetcher.FetchToken(ctx, addr)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nToken found:\n")
	fmt.Fprintf(out, "  Name:     %s\n", rec.Name)
	fmt.Fprintf(out, "  Symbol:   %s\n", rec.Symbol)
	fmt.Fprintf(out, "  Decimals: %d\n", rec.Decimals)

	tokenDir, err := registry.WriteStagedRecord(cfg.RecordDir, rec)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nToken successfully added: %s\n", tokenDir)
	fmt.Fprintf(out, "Don't forget to add a logo file (logo.svg or logo.png) to %s/\n", rec.Symbol)
	return nil
}
