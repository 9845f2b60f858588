package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/almatienda/catalog-service/internal/database"
	"github.com/almatienda/catalog-service/internal/export"
)

var exportOutput string

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to an XLSX workbook",
	Long: `Export every product to an XLSX workbook with two sheets: one row per
product and one row per variation, with a price column per price list and a
stock column per warehouse.`,
	Example: `  catalog-service export
  catalog-service export --output ./catalogo.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: catalogo-<date>.xlsx)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	ref, err := database.LoadReferenceData(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reference data: %w", err)
	}

	products, err := database.ListProductDetails(ctx)
	if err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	content, err := export.WriteCatalog(products, ref)
	if err != nil {
		return fmt.Errorf("failed to build workbook: %w", err)
	}

	output := exportOutput
	if output == "" {
		output = fmt.Sprintf("catalogo-%s.xlsx", time.Now().Format("2006-01-02"))
	}

	if err := os.WriteFile(output, content, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	logger.Info().
		Str("file", output).
		Int("products", len(products)).
		Msg("Catalog exported")
	return nil
}
