package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"orderetl/internal/model"
)

// Columns required in the input file header. Order in the file does not
// matter; positions are resolved from the header row.
var required = []string{
	"order_id",
	"customer_id",
	"product_id",
	"order_date",
	"quantity",
	"price_usd",
	"status",
	"delivery_address",
}

// Result holds the raw rows plus counts for the run manifest.
type Result struct {
	Rows    []model.Raw
	Skipped int // rows with the wrong field count
}

// Load reads the input CSV. A missing file or a missing required column
// is a hard error; malformed rows are skipped and counted.
func Load(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, name := range required {
		if _, ok := idx[name]; !ok {
			return Result{}, fmt.Errorf("input missing column %q", name)
		}
	}

	var res Result
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}
		if len(rec) != len(header) {
			res.Skipped++
			continue
		}
		// Position from the reader itself: quoted fields may span
		// physical lines, so a record counter would drift.
		line, _ := r.FieldPos(0)
		res.Rows = append(res.Rows, model.Raw{
			Line:            line,
			OrderID:         rec[idx["order_id"]],
			CustomerID:      rec[idx["customer_id"]],
			ProductID:       rec[idx["product_id"]],
			OrderDate:       rec[idx["order_date"]],
			Quantity:        rec[idx["quantity"]],
			PriceUSD:        rec[idx["price_usd"]],
			Status:          rec[idx["status"]],
			DeliveryAddress: rec[idx["delivery_address"]],
		})
	}
	return res, nil
}
