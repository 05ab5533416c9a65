package transform

import (
	"time"

	"orderetl/internal/model"
)

// Result is the derived batch plus drop accounting.
type Result struct {
	Rows    []model.Processed
	Dropped int // rows whose order_date failed to parse
}

// Derive computes total_order_value and order_month for each order.
// Validation guarantees the date format, but a parse failure still only
// drops the row rather than aborting the batch.
func Derive(orders []model.Order) Result {
	var res Result
	for _, o := range orders {
		p, err := model.Derive(o)
		if err != nil {
			res.Dropped++
			continue
		}
		res.Rows = append(res.Rows, p)
	}
	return res
}

// FilterAfter keeps rows with order_date strictly after the watermark.
// A zero watermark means full load and returns the input unchanged.
func FilterAfter(rows []model.Processed, watermark time.Time) []model.Processed {
	if watermark.IsZero() {
		return rows
	}
	var out []model.Processed
	for _, r := range rows {
		if r.OrderDate.After(watermark) {
			out = append(out, r)
		}
	}
	return out
}

// MaxOrderDate returns the latest order_date in the batch, or zero for
// an empty batch. Used to advance the watermark after a successful run.
func MaxOrderDate(rows []model.Processed) time.Time {
	var max time.Time
	for _, r := range rows {
		if r.OrderDate.After(max) {
			max = r.OrderDate
		}
	}
	return max
}
