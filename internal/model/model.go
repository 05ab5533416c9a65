package model

import "time"

// DateLayout is the required order_date format in the input file.
const DateLayout = "2006-01-02"

// MonthLayout is the derived order_month format.
const MonthLayout = "2006-01"

// Raw is one CSV row as read from the input file, before any coercion.
// Line is the 1-based line number in the source file, kept for drop logs.
type Raw struct {
	Line            int
	OrderID         string
	CustomerID      string
	ProductID       string
	OrderDate       string
	Quantity        string
	PriceUSD        string
	Status          string
	DeliveryAddress string
}

// Order is a coerced, validated input record.
type Order struct {
	OrderID         string  `validate:"required"`
	CustomerID      string  `validate:"required"`
	ProductID       string  `validate:"required"`
	OrderDate       string  `validate:"required,datetime=2006-01-02"`
	Quantity        int64   `validate:"gt=0"`
	PriceUSD        float64 `validate:"gt=0"`
	Status          string  `validate:"oneof=completed pending cancelled"`
	DeliveryAddress string
}

// Processed is the output record with derived fields.
type Processed struct {
	OrderID         string
	OrderDate       time.Time
	OrderMonth      string
	CustomerID      string
	ProductID       string
	Quantity        int64
	PriceUSD        float64
	TotalValue      float64
	Status          string
	DeliveryAddress string
}

// Derive converts a validated Order to a Processed record.
// Callers must have validated OrderDate against DateLayout already.
func Derive(o Order) (Processed, error) {
	d, err := time.Parse(DateLayout, o.OrderDate)
	if err != nil {
		return Processed{}, err
	}
	return Processed{
		OrderID:         o.OrderID,
		OrderDate:       d,
		OrderMonth:      d.Format(MonthLayout),
		CustomerID:      o.CustomerID,
		ProductID:       o.ProductID,
		Quantity:        o.Quantity,
		PriceUSD:        o.PriceUSD,
		TotalValue:      float64(o.Quantity) * o.PriceUSD,
		Status:          o.Status,
		DeliveryAddress: o.DeliveryAddress,
	}, nil
}
