package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"readiness-workers/internal/common/validation"
	"readiness-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func loadRegistry(path string) (*registry.ActivityRegistry, error) {
	if path == "" {
		return registry.Default()
	}
	return registry.LoadRegistry(path)
}

func newActivitiesCmd() *cobra.Command {
	var (
		registryPath string
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List the job worker activities and their error codes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(registryPath)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), "", reg.Activities)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TASK TYPE\tNAME\tTIMEOUT\tERROR CODES")
			for _, a := range reg.Activities {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.TaskType, a.DisplayName, a.Timeout, strings.Join(a.ErrorCodes, ","))
			}
			return tw.Flush()
		},
	}
	cmd.PersistentFlags().StringVar(&registryPath, "registry", "", "Path to an activity registry JSON file (default: built-in)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full registry entries as JSON")

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check a registry file before shipping it with the workers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := loadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := validateRegistry(reg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
			return nil
		},
	})
	return cmd
}

// validateRegistry checks the descriptive fields, compiles every input schema
// and requires an entry for each task type the workers serve.
func validateRegistry(reg *registry.ActivityRegistry) error {
	if err := reg.Validate(); err != nil {
		return err
	}
	for _, a := range reg.Activities {
		if _, err := validation.NewSchemaValidator(a.InputSchema); err != nil {
			return fmt.Errorf("activity %s: %w", a.ID, err)
		}
	}
	for _, taskType := range taskTypes {
		if _, ok := reg.Find(taskType); !ok {
			return fmt.Errorf("no activity registered for task type %s", taskType)
		}
	}
	return nil
}
