package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sells-group/ecom-prep/internal/config"
	"github.com/sells-group/ecom-prep/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every stage in order",
	Long:  "Runs clean, transactions, reviews, tracking, segment and heatmap, stopping at the first failure.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		if err := cfg.Validate("run"); err != nil {
			return err
		}
		st, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		skip, _ := cmd.Flags().GetStringSlice("skip")
		return runAll(ctx, cfg, st, skip)
	},
}

func runAll(ctx context.Context, c *config.Config, st store.Store, skip []string) error {
	skipped := make(map[string]bool, len(skip))
	for _, s := range skip {
		skipped[s] = true
	}
	for _, s := range stages {
		if skipped[s.name] {
			continue
		}
		if err := runStage(ctx, c, st, s); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	runCmd.Flags().StringSlice("skip", nil, "stages to skip (e.g. heatmap)")
	rootCmd.AddCommand(runCmd)
}
