package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ecom-prep/internal/synth"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"clean", "transactions", "reviews", "tracking", "segment", "heatmap", "run", "runs"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "ecom-prep", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_PersistentFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup("data-dir"))
	seed := rootCmd.PersistentFlags().Lookup("seed")
	require.NotNil(t, seed)
	assert.Equal(t, "0", seed.DefValue)
}

func TestRunCommand_Flags(t *testing.T) {
	require.NotNil(t, runCmd.Flags().Lookup("skip"))
}

func TestRunsListCommand_Flags(t *testing.T) {
	for _, name := range []string{"stage", "status", "limit"} {
		assert.NotNil(t, runsListCmd.Flags().Lookup(name), "runs list should have --%s", name)
	}
	assert.Equal(t, "50", runsListCmd.Flags().Lookup("limit").DefValue)
}

func TestStagesOrder(t *testing.T) {
	var names []string
	for _, s := range stages {
		names = append(names, s.name)
	}
	assert.Equal(t, []string{"clean", "transactions", "reviews", "tracking", "segment", "heatmap"}, names)
}

func TestNewRand_Deterministic(t *testing.T) {
	a, b := newRand(42), newRand(42)
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	assert.NotEqual(t, newRand(1).Uint64(), newRand(2).Uint64())
}

func TestNewReviewWriter(t *testing.T) {
	c := testConfig(t, "")
	w, llm := newReviewWriter(c)
	assert.IsType(t, synth.TemplateWriter{}, w)
	assert.Nil(t, llm)

	c.Reviews.Provider = "anthropic"
	c.Anthropic.Key = "sk-test"
	c.Anthropic.Model = "claude-haiku-4-5-20251001"
	w, llm = newReviewWriter(c)
	require.NotNil(t, llm)
	assert.Same(t, llm, w)
	assert.Equal(t, "claude-haiku-4-5-20251001", llm.Model)
}
