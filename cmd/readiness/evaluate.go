package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"readiness-workers/internal/common/config"
	"readiness-workers/internal/common/logger"
	"readiness-workers/internal/common/validation"
	"readiness-workers/internal/scoring"
	"readiness-workers/pkg/registry"

	"github.com/spf13/cobra"

	re "readiness-workers/internal/workers/readiness/resolve-eligibility"
	sm "readiness-workers/internal/workers/readiness/score-medical"
	so "readiness-workers/internal/workers/readiness/score-olq"
)

type kind string

const (
	kindEligibility kind = "eligibility"
	kindMedical     kind = "medical"
	kindOLQ         kind = "olq"
)

var taskTypes = map[kind]string{
	kindEligibility: re.TaskType,
	kindMedical:     sm.TaskType,
	kindOLQ:         so.TaskType,
}

// evaluator validates one JSON document against the activity schema of its
// kind and scores it.
type evaluator func(ctx context.Context, document []byte) (interface{}, error)

// cliEnv holds the root flags shared by every subcommand.
type cliEnv struct {
	configPath string
	logLevel   string
}

func (e *cliEnv) engine() (*scoring.Engine, error) {
	if e.configPath == "" {
		return scoring.NewDefaultEngine()
	}
	cfg, err := config.LoadFromFile(e.configPath)
	if err != nil {
		return nil, err
	}
	return scoring.NewEngine(cfg.Scoring)
}

func (e *cliEnv) newLogger() logger.Logger {
	level := e.logLevel
	if level == "" {
		level = "warn"
	}
	return logger.NewFromConfig(config.LoggingConfig{Level: level, Format: "console", Output: "stderr"})
}

func (e *cliEnv) evaluator(k kind) (evaluator, error) {
	taskType, ok := taskTypes[k]
	if !ok {
		return nil, fmt.Errorf("unknown kind %q (want eligibility, medical or olq)", k)
	}

	engine, err := e.engine()
	if err != nil {
		return nil, fmt.Errorf("failed to build scoring engine: %w", err)
	}
	reg, err := registry.Default()
	if err != nil {
		return nil, err
	}
	activity, ok := reg.Find(taskType)
	if !ok {
		return nil, fmt.Errorf("no activity registered for %s", taskType)
	}
	schema, err := validation.NewSchemaValidator(activity.InputSchema)
	if err != nil {
		return nil, err
	}

	log := e.newLogger()
	switch k {
	case kindEligibility:
		h := re.NewHandler(re.LoadConfig(config.WorkerConfig{}), engine.Eligibility, nil, nil, log)
		return newEvaluator(schema, h.Execute), nil
	case kindMedical:
		h := sm.NewHandler(sm.LoadConfig(config.WorkerConfig{}), engine.Medical, nil, nil, log)
		return newEvaluator(schema, h.Execute), nil
	default:
		h := so.NewHandler(so.LoadConfig(config.WorkerConfig{}), engine.OLQ, nil, nil, log)
		return newEvaluator(schema, h.Execute), nil
	}
}

func newEvaluator[I, O any](schema *validation.SchemaValidator, execute func(context.Context, *I) (*O, error)) evaluator {
	return func(ctx context.Context, document []byte) (interface{}, error) {
		if err := schema.Validate(document); err != nil {
			return nil, err
		}
		var input I
		if err := validation.Decode(document, &input); err != nil {
			return nil, err
		}
		out, err := execute(ctx, &input)
		if err != nil {
			return nil, err
		}
		return out, nil
	}
}

func newEvaluateCmd(env *cliEnv, k kind, short string) *cobra.Command {
	var inputPath, outputPath string

	cmd := &cobra.Command{
		Use:   string(k),
		Short: short,
		Long:  fmt.Sprintf("%s. The input file uses the %s job variable shape; pass - to read stdin.", short, taskTypes[k]),
		RunE: func(cmd *cobra.Command, _ []string) error {
			eval, err := env.evaluator(k)
			if err != nil {
				return err
			}
			document, err := readInput(cmd.InOrStdin(), inputPath)
			if err != nil {
				return err
			}
			result, err := eval(cmd.Context(), document)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), outputPath, result)
		},
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "-", "Path to input JSON file")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "Path to output JSON file (default stdout)")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}
	return data, nil
}

func writeJSON(stdout io.Writer, path string, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	out = append(out, '\n')

	if path == "" {
		_, err = stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
