package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"denticore/internal/catalog"
)

func newCatalogCmd(tablesPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the shade catalog store",
	}
	cmd.AddCommand(newCatalogImportCmd(tablesPath))
	cmd.AddCommand(newCatalogLookupCmd(tablesPath))
	return cmd
}

func newCatalogImportCmd(tablesPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load catalog rows from a JSON or YAML file into the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), *tablesPath, false)
			if err != nil {
				return err
			}
			defer app.close()

			rows, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			written, err := app.catalog.Import(cmd.Context(), rows)
			if err != nil {
				return fmt.Errorf("import catalog: %w", err)
			}
			app.logger.Info("catalog imported",
				zap.String("file", args[0]),
				zap.Int("rows", written),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d rows\n", written)
			return nil
		},
	}
}

func newCatalogLookupCmd(tablesPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <product-line>",
		Short: "Print catalog rows for one product line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd.Context(), *tablesPath, false)
			if err != nil {
				return err
			}
			defer app.close()

			rows, err := app.catalog.Lookup(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("lookup: %w", err)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rows)
		},
	}
}
