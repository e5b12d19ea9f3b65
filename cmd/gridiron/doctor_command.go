package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gridiron/internal/preflight"
	"gridiron/internal/textutil"
)

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that gridiron is ready to run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cfg)
			results = append(results, preflight.CheckDatabase(cfg))

			if jsonOutput {
				type jsonCheck struct {
					Name   string `json:"name"`
					Passed bool   `json:"passed"`
					Detail string `json:"detail,omitempty"`
				}
				checks := make([]jsonCheck, 0, len(results))
				for _, result := range results {
					checks = append(checks, jsonCheck{Name: result.Name, Passed: result.Passed, Detail: result.Detail})
				}
				return writeJSON(cmd, map[string]any{
					"healthy": preflight.Healthy(results),
					"checks":  checks,
				})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range renderSectionHeader("Preflight", colorize) {
				fmt.Fprintln(out, line)
			}
			failed := 0
			for _, result := range results {
				kind := textutil.Ternary(result.Passed, statusOK, statusError)
				if !result.Passed {
					failed++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d checks failed", failed, len(results))
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON output")
	return cmd
}
