package schema

import (
	"strconv"

	"orderetl/internal/model"
)

// Table is the target table name in the relational store.
const Table = "customer_orders"

// Columns fixes the set and order of output columns. Every sink consumes
// this projection, so the CSV header, the SQLite DDL and the Parquet
// schema cannot drift apart.
var Columns = []string{
	"order_id",
	"order_date",
	"order_month",
	"customer_id",
	"product_id",
	"quantity",
	"price_usd",
	"total_order_value",
	"status",
	"delivery_address",
}

// Row projects a processed order into Columns order as strings, for the
// CSV sink and for tests.
func Row(p model.Processed) []string {
	return []string{
		p.OrderID,
		p.OrderDate.Format(model.DateLayout),
		p.OrderMonth,
		p.CustomerID,
		p.ProductID,
		strconv.FormatInt(p.Quantity, 10),
		strconv.FormatFloat(p.PriceUSD, 'f', -1, 64),
		strconv.FormatFloat(p.TotalValue, 'f', -1, 64),
		p.Status,
		p.DeliveryAddress,
	}
}
