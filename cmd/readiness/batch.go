package main

import (
	"context"
	"fmt"
	"runtime"

	"readiness-workers/internal/common/errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// batchItem is the outcome for one input file. Exactly one of Result and
// Error is set.
type batchItem struct {
	File      string      `json:"file"`
	Result    interface{} `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorCode string      `json:"errorCode,omitempty"`
}

func newBatchCmd(env *cliEnv) *cobra.Command {
	var (
		kindFlag    string
		inputs      []string
		outputPath  string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate many input files of one kind concurrently",
		Long:  "Evaluates every input file with the chosen evaluator. Files are processed concurrently and reported in the order given; a file that fails validation is reported with its error code instead of aborting the batch.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			eval, err := env.evaluator(kind(kindFlag))
			if err != nil {
				return err
			}
			items, err := runBatch(cmd.Context(), eval, inputs, concurrency)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), outputPath, items)
		},
	}
	cmd.Flags().StringVarP(&kindFlag, "kind", "k", "", "Evaluator to use: eligibility, medical or olq (required)")
	cmd.Flags().StringArrayVarP(&inputs, "input", "i", nil, "Input JSON file; repeat for more files (required)")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Path to output JSON file (default stdout)")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.GOMAXPROCS(0), "Maximum files evaluated at once")

	if err := cmd.MarkFlagRequired("kind"); err != nil {
		panic(fmt.Sprintf("failed to mark kind flag as required: %v", err))
	}
	if err := cmd.MarkFlagRequired("input"); err != nil {
		panic(fmt.Sprintf("failed to mark input flag as required: %v", err))
	}
	return cmd
}

// runBatch evaluates every file and returns one item per file in input order.
// Unreadable files abort the batch; evaluation errors are recorded per item.
func runBatch(ctx context.Context, eval evaluator, files []string, concurrency int) ([]batchItem, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	for _, file := range files {
		if file == "-" {
			return nil, fmt.Errorf("batch inputs must be files, not stdin")
		}
	}
	items := make([]batchItem, len(files))

	g, gCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			document, err := readInput(nil, file)
			if err != nil {
				return err
			}
			item := batchItem{File: file}
			result, err := eval(gCtx, document)
			if err != nil {
				stdErr := errors.Normalize(err)
				item.Error = stdErr.Message
				item.ErrorCode = string(stdErr.Code)
			} else {
				item.Result = result
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
