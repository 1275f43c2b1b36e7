// Package commands implements cardextract, an offline companion to the
// cardsmith server: it runs the extractors, the affiliate link rules and the
// card renderer on saved pages.
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/cardsmith/internal/logger"
	"github.com/MrSnakeDoc/cardsmith/internal/version"
)

type rootOptions struct {
	logLevel string
	pretty   bool
}

func (o *rootOptions) logger() logger.Logger {
	return logger.New(o.logLevel, o.pretty)
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "cardextract",
		Short:         "cardextract runs the product card pipeline on saved pages.",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr.")
	cmd.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "Human readable logs.")

	cmd.AddCommand(
		newExtractCmd(opts),
		newLinkCmd(),
		newValidateCmd(),
	)
	return cmd
}

func ExecuteContext(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
