// Package cli implements the tokenreg command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"monad-token-registry/internal/config"
	"monad-token-registry/internal/logging"
)

// Exit codes. An invalid registry and a broken environment are distinct
// failures, so CI can tell them apart; an empty record directory is not
// a failure at all.
const (
	ExitOK      = 0
	ExitInvalid = 1
	ExitFatal   = 2
)

var (
	verbose bool
	logger  *slog.Logger
	cfg     config.Config
)

var rootCmd = &cobra.Command{
	Use:   "tokenreg",
	Short: "Manage the Monad token registry",
	Long: `tokenreg maintains the Monad mainnet token registry: it fetches token
metadata from the chain, validates staged record files, and assembles
them into a single token list document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(verbose)
		cfg = config.Load(viper.GetViper())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
	rootCmd.PersistentFlags().String("dir", "",
		"directory holding staged token records (default \""+config.DefaultRecordDir+"\")")
	rootCmd.PersistentFlags().String("rpc-url", "",
		"ledger RPC endpoint (default $"+config.EnvRPCURL+" or "+config.DefaultRPCURL+")")

	_ = viper.BindPFlag("record_dir", rootCmd.PersistentFlags().Lookup("dir"))
	_ = viper.BindPFlag("rpc_url", rootCmd.PersistentFlags().Lookup("rpc-url"))
}

// Execute runs the root command and maps failures to exit codes.
func Execute() int {
	err := rootCmd.ExecuteContext(context.Background())
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, errInvalidRecords) {
		return ExitInvalid
	}
	return ExitFatal
}
