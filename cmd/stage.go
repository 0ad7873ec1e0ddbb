package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"math/rand/v2"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/ecom-prep/internal/config"
	"github.com/sells-group/ecom-prep/internal/dataset"
	"github.com/sells-group/ecom-prep/internal/model"
	"github.com/sells-group/ecom-prep/internal/store"
	"github.com/sells-group/ecom-prep/internal/tabular"
)

// stage is one step of the pipeline.
type stage struct {
	name  string
	short string
	seed  func(*config.Config) int64
	run   func(ctx context.Context, env *stageEnv) (any, error)
}

func pipelineSeed(c *config.Config) int64 { return c.Pipeline.Seed }

func nlpSeed(c *config.Config) int64 { return c.NLP.Seed }

// stages lists the pipeline steps in execution order.
var stages = []stage{
	{name: "clean", short: "Clean customer behaviour and build the master order record", seed: pipelineSeed, run: runClean},
	{name: "transactions", short: "Synthesize transactions for unpaid orders", seed: pipelineSeed, run: runTransactions},
	{name: "reviews", short: "Generate reviews and ratings for delivered items", seed: pipelineSeed, run: runReviews},
	{name: "tracking", short: "Refresh shipment tracking from the master orders", seed: pipelineSeed, run: runTracking},
	{name: "segment", short: "Score, topic-model and cluster the reviews", seed: nlpSeed, run: runSegment},
	{name: "heatmap", short: "Write per-cluster customer location layers", seed: pipelineSeed, run: runHeatmap},
}

// stageEnv is what a running stage can reach.
type stageEnv struct {
	cfg   *config.Config
	dir   dataset.Dir
	store store.Store
	run   *model.Run
	rng   *rand.Rand
}

// newRand returns the deterministic generator for seed.
func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

func openStore(ctx context.Context, c *config.Config) (store.Store, error) {
	return store.Open(ctx, c.Store.Driver, c.Store.DatabaseURL)
}

// runStage records a run around s and stores its summary.
func runStage(ctx context.Context, c *config.Config, st store.Store, s stage) error {
	seed := s.seed(c)
	run, err := st.CreateRun(ctx, s.name, seed)
	if err != nil {
		return eris.Wrapf(err, "%s: create run", s.name)
	}
	log := zap.L().With(zap.String("stage", s.name), zap.String("run_id", run.ID))
	log.Info("stage started", zap.Int64("seed", seed))

	env := &stageEnv{
		cfg:   c,
		dir:   dataset.NewDir(c.Data.Dir, tabular.Format(c.Data.OutputFormat)),
		store: st,
		run:   run,
		rng:   newRand(seed),
	}
	summary, runErr := s.run(ctx, env)

	status, errMsg := model.RunStatusComplete, ""
	if runErr != nil {
		status, errMsg = model.RunStatusFailed, runErr.Error()
	}
	var data []byte
	if summary != nil {
		if data, err = json.Marshal(summary); err != nil {
			log.Warn("stage summary not encodable", zap.Error(err))
			data = nil
		}
	}
	if err := st.FinishRun(context.WithoutCancel(ctx), run.ID, status, data, errMsg); err != nil {
		if runErr == nil {
			return eris.Wrapf(err, "%s: finish run", s.name)
		}
		log.Error("failed to record run failure", zap.Error(err))
	}
	if runErr != nil {
		log.Error("stage failed", zap.Error(runErr))
		return runErr
	}
	log.Info("stage complete")
	return nil
}

// write stores a table in the data directory and records a snapshot of it.
func (e *stageEnv) write(ctx context.Context, name string, t *tabular.Table) error {
	path, err := e.dir.Write(name, t)
	if err != nil {
		return err
	}
	sum, err := fileSHA256(path)
	if err != nil {
		return err
	}
	return e.store.SaveSnapshot(ctx, &model.Snapshot{
		RunID:  e.run.ID,
		Name:   name,
		Path:   path,
		Rows:   t.Len(),
		SHA256: sum,
	})
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", eris.Wrapf(err, "open %s", path)
	}
	defer f.Close() //nolint:errcheck

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", eris.Wrapf(err, "hash %s", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func newStageCmd(s stage) *cobra.Command {
	return &cobra.Command{
		Use:   s.name,
		Short: s.short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := cfg.Validate(s.name); err != nil {
				return err
			}
			st, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			return runStage(ctx, cfg, st, s)
		},
	}
}

func init() {
	for _, s := range stages {
		rootCmd.AddCommand(newStageCmd(s))
	}
}
