package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/config"
)

var cfg *config.Config

var (
	flagDataDir string
	flagSeed    int64
)

var rootCmd = &cobra.Command{
	Use:   "ecom-prep",
	Short: "E-commerce data preparation pipeline",
	Long: "Reconciles order, item, product, transaction and behavioural extracts into a master order record, " +
		"then derives transactions, reviews, tracking, review segments and customer heatmaps from it.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if cmd.Flags().Changed("data-dir") {
			c.Data.Dir = flagDataDir
		}
		if cmd.Flags().Changed("seed") {
			c.Pipeline.Seed = flagSeed
			c.NLP.Seed = flagSeed
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "directory holding the input and output tables (overrides data.dir)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "random seed for synthesis and segmentation (overrides pipeline.seed and nlp.seed)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
