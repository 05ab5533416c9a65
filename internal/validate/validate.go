package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"orderetl/internal/model"
)

var v = validator.New()

// RowError records why a row was dropped.
type RowError struct {
	Line   int
	Reason string
}

// Result is the cleaned batch plus drop accounting.
type Result struct {
	Valid       []model.Order
	Duplicates  int
	Unparseable int // numeric coercion failures
	Invalid     int // constraint violations
	Dropped     []RowError
}

// Clean removes duplicate order_ids (first occurrence wins), coerces
// numeric fields and validates each record. Offending rows are dropped
// and recorded; the batch continues.
func Clean(rows []model.Raw) Result {
	var res Result
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		// Dedup on the trimmed id: the stored record is trimmed too, so
		// whitespace variants must collapse to one key.
		id := strings.TrimSpace(r.OrderID)
		if _, dup := seen[id]; dup {
			res.Duplicates++
			res.Dropped = append(res.Dropped, RowError{Line: r.Line, Reason: fmt.Sprintf("duplicate order_id %s", id)})
			continue
		}
		seen[id] = struct{}{}

		qty, err := strconv.ParseInt(strings.TrimSpace(r.Quantity), 10, 64)
		if err != nil {
			res.Unparseable++
			res.Dropped = append(res.Dropped, RowError{Line: r.Line, Reason: fmt.Sprintf("quantity %q is not an integer", r.Quantity)})
			continue
		}
		price, err := strconv.ParseFloat(strings.TrimSpace(r.PriceUSD), 64)
		if err != nil {
			res.Unparseable++
			res.Dropped = append(res.Dropped, RowError{Line: r.Line, Reason: fmt.Sprintf("price_usd %q is not a number", r.PriceUSD)})
			continue
		}

		ord := model.Order{
			OrderID:         id,
			CustomerID:      strings.TrimSpace(r.CustomerID),
			ProductID:       strings.TrimSpace(r.ProductID),
			OrderDate:       strings.TrimSpace(r.OrderDate),
			Quantity:        qty,
			PriceUSD:        price,
			Status:          strings.TrimSpace(r.Status),
			DeliveryAddress: r.DeliveryAddress,
		}
		if err := v.Struct(ord); err != nil {
			res.Invalid++
			res.Dropped = append(res.Dropped, RowError{Line: r.Line, Reason: reason(err)})
			continue
		}
		res.Valid = append(res.Valid, ord)
	}
	return res
}

// reason flattens validator errors into a single log-friendly string.
func reason(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
