package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mwhitfield/quill/internal/core/domain"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product catalog",
	Long:  "Load and inspect the scraped product catalog used by the search page",
}

// Expected CSV columns: title, total_price, price_per_unit, unit,
// availability, source, link (link may be empty).
var productsImportCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import products from a CSV file",
	Long:  "Import scraped products. Rows are upserted by (title, source).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open csv: %w", err)
		}
		defer f.Close()

		reader := csv.NewReader(f)
		reader.FieldsPerRecord = -1

		imported := 0
		line := 0
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read csv: %w", err)
			}
			line++

			// Skip a header row if present.
			if line == 1 && record[0] == "title" {
				continue
			}

			product, err := parseProductRecord(record)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}

			if err := services.ProductRepo.Upsert(cmd.Context(), product); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			imported++
		}

		total, err := services.ProductRepo.Count(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d products (%d total in catalog)\n", imported, total)
		return nil
	},
}

var productsCountCmd = &cobra.Command{
	Use:   "count",
	Short: "Show the catalog size",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		total, err := services.ProductRepo.Count(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%d products\n", total)
		return nil
	},
}

func parseProductRecord(record []string) (*domain.Product, error) {
	if len(record) < 6 {
		return nil, fmt.Errorf("expected at least 6 columns, got %d", len(record))
	}

	totalPrice, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid total_price %q: %w", record[1], err)
	}

	pricePerUnit, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return nil, fmt.Errorf("invalid price_per_unit %q: %w", record[2], err)
	}

	product := &domain.Product{
		Title:        record[0],
		TotalPrice:   totalPrice,
		PricePerUnit: pricePerUnit,
		Unit:         record[3],
		Availability: record[4],
		Source:       record[5],
	}
	if len(record) > 6 && record[6] != "" {
		link := record[6]
		product.Link = &link
	}

	return product, nil
}

func init() {
	rootCmd.AddCommand(productsCmd)
	productsCmd.AddCommand(productsImportCmd)
	productsCmd.AddCommand(productsCountCmd)
}
