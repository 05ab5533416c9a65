package cmd

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"orderetl/internal/model"
)

var (
	genCount  int
	genOutput string
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a sample orders CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		return generateOrders(genCount, genOutput)
	},
}

func init() {
	genCmd.Flags().IntVar(&genCount, "count", 100, "number of orders to generate")
	genCmd.Flags().StringVar(&genOutput, "output", "dataset.csv", "output file")
}

func generateOrders(count int, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer file.Close()

	customers := []string{"C001", "C002", "C003", "C004", "C005"}
	products := []string{"P100", "P200", "P300", "P400", "P500"}
	statuses := []string{"completed", "pending", "cancelled"}
	cities := []string{"12 Main St, Springfield", "9 Oak Ave, Portland", "44 Pine Rd, Austin", "3 Elm Ct, Denver"}

	base := time.Now().UTC().AddDate(0, -3, 0)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	w := csv.NewWriter(file)
	defer w.Flush()
	header := []string{"order_id", "customer_id", "product_id", "order_date", "quantity", "price_usd", "status", "delivery_address"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < count; i++ {
		date := base.AddDate(0, 0, rng.Intn(90))
		row := []string{
			fmt.Sprintf("ORD%05d", i+1),
			customers[rng.Intn(len(customers))],
			products[rng.Intn(len(products))],
			date.Format(model.DateLayout),
			strconv.Itoa(1 + rng.Intn(5)),
			strconv.FormatFloat(float64(100+rng.Intn(9900))/100, 'f', 2, 64),
			statuses[rng.Intn(len(statuses))],
			cities[rng.Intn(len(cities))],
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write order %d: %w", i+1, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	fmt.Printf("generated %d orders to %s\n", count, outputFile)
	return nil
}
