// Package main provides the readiness CLI for scoring candidate files offline.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	env := &cliEnv{}
	root := &cobra.Command{
		Use:           "readiness",
		Short:         "Eligibility and readiness scoring",
		Long:          "Evaluates candidate profiles against admission schemes and scores medical and OLQ readiness from JSON files, using the same tables and validation as the job workers.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&env.configPath, "config", "c", "", "Path to a config YAML whose scoring section overrides the built-in tables")
	root.PersistentFlags().StringVar(&env.logLevel, "log-level", "warn", "Log level written to stderr")

	root.AddCommand(
		newEvaluateCmd(env, kindEligibility, "Resolve admission-scheme eligibility for a candidate file"),
		newEvaluateCmd(env, kindMedical, "Score medical readiness for a measurements file"),
		newEvaluateCmd(env, kindOLQ, "Score OLQ readiness for a trait-score file"),
		newBatchCmd(env),
		newActivitiesCmd(),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
