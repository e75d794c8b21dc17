package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"denticore/internal/blob"
	"denticore/internal/core"
	"denticore/pkg/domain"
)

func newCheckCmd(tablesPath *string) *cobra.Command {
	var (
		planPath       string
		tooth          string
		cavityClass    string
		aestheticGoals string
		pretty         bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run one treatment plan through the correction pipeline",
		Long: `Reads a plan JSON document, applies the shade-role, brand-alias, and
incisal-effects corrections, appends the minimum-layer advisory warning, and
prints the corrected plan to stdout.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newAppContext(cmd.Context(), *tablesPath, true)
			if err != nil {
				return err
			}
			defer app.close()

			plan, err := readPlan(planPath)
			if err != nil {
				return err
			}
			caseCtx := domain.CaseContext{
				Tooth:          tooth,
				CavityClass:    cavityClass,
				AestheticGoals: aestheticGoals,
			}

			opts := []core.ServiceOption{
				core.WithLogger(app.logger),
			}
			if app.archive != nil {
				opts = append(opts, core.WithArchiver(blob.NewArchiver(app.archive)))
			}
			svc := core.NewService(core.NewEngine(app.catalog, app.tables), opts...)

			corrected, report, err := svc.ProcessPlan(cmd.Context(), plan, caseCtx)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(corrected); err != nil {
				return err
			}
			if report.ArchiveKey != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "snapshot archived as %s\n", report.ArchiveKey)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&planPath, "plan", "p", "-", "plan JSON file (- for stdin)")
	cmd.Flags().StringVar(&tooth, "tooth", "", "FDI tooth number (e.g. 11)")
	cmd.Flags().StringVar(&cavityClass, "cavity-class", "", "cavity class (e.g. 'Classe IV')")
	cmd.Flags().StringVar(&aestheticGoals, "aesthetic-goals", "", "free-text aesthetic goals")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent output JSON")
	return cmd
}

func readPlan(path string) (domain.Plan, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" || path == "" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return domain.Plan{}, fmt.Errorf("read plan: %w", err)
	}
	var plan domain.Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return domain.Plan{}, fmt.Errorf("decode plan: %w", err)
	}
	return plan, nil
}
