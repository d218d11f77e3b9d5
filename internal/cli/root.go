package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// Execute runs the swagger2ts CLI.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the CLI with ctx; cancelling it aborts document
// downloads.
func ExecuteContext(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "swagger2ts",
		Short:         "Generate TypeScript API clients from OpenAPI documents",
		Long:          "swagger2ts turns an OpenAPI v3 document into TypeScript model classes with JSON codecs and per-tag request functions.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	flagErr := func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	}
	cmd.SetFlagErrorFunc(flagErr)

	cmd.PersistentFlags().StringP("config", "c", "", "Config file path (defaults to swagger2ts.yaml in the workspace)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging output")

	for _, sub := range []*cobra.Command{newGenerateCmd(), newInitCmd(), newInspectCmd()} {
		sub.SetFlagErrorFunc(flagErr)
		cmd.AddCommand(sub)
	}
	return cmd
}
