package transform

import (
	"testing"
	"time"

	"orderetl/internal/model"
)

func TestDerive_ComputesTotalAndMonth(t *testing.T) {
	orders := []model.Order{
		{OrderID: "o1", OrderDate: "2023-04-15", Quantity: 3, PriceUSD: 2.5},
	}
	res := Derive(orders)
	if res.Dropped != 0 || len(res.Rows) != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	p := res.Rows[0]
	if p.TotalValue != 7.5 {
		t.Fatalf("total value: got=%v want=7.5", p.TotalValue)
	}
	if p.OrderMonth != "2023-04" {
		t.Fatalf("order month: got=%s want=2023-04", p.OrderMonth)
	}
	if p.OrderDate.Format(model.DateLayout) != "2023-04-15" {
		t.Fatalf("order date: got=%v", p.OrderDate)
	}
}

func TestDerive_DropsUnparseableDate(t *testing.T) {
	orders := []model.Order{
		{OrderID: "o1", OrderDate: "not-a-date", Quantity: 1, PriceUSD: 1},
		{OrderID: "o2", OrderDate: "2023-01-02", Quantity: 1, PriceUSD: 1},
	}
	res := Derive(orders)
	if res.Dropped != 1 || len(res.Rows) != 1 {
		t.Fatalf("unexpected result: dropped=%d rows=%d", res.Dropped, len(res.Rows))
	}
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(model.DateLayout, s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

func TestFilterAfter_StrictlyAfter(t *testing.T) {
	rows := []model.Processed{
		{OrderID: "o1", OrderDate: mustDate(t, "2022-11-30")},
		{OrderID: "o2", OrderDate: mustDate(t, "2022-12-01")},
		{OrderID: "o3", OrderDate: mustDate(t, "2022-12-02")},
	}
	got := FilterAfter(rows, mustDate(t, "2022-12-01"))
	if len(got) != 1 || got[0].OrderID != "o3" {
		t.Fatalf("strictly-after filter failed: %+v", got)
	}
}

func TestFilterAfter_ZeroWatermarkIsFullLoad(t *testing.T) {
	rows := []model.Processed{
		{OrderID: "o1", OrderDate: mustDate(t, "2022-11-30")},
		{OrderID: "o2", OrderDate: mustDate(t, "2022-12-02")},
	}
	got := FilterAfter(rows, time.Time{})
	if len(got) != 2 {
		t.Fatalf("full load should keep all rows, got %d", len(got))
	}
}

func TestMaxOrderDate(t *testing.T) {
	if !MaxOrderDate(nil).IsZero() {
		t.Fatalf("empty batch should yield zero time")
	}
	rows := []model.Processed{
		{OrderDate: mustDate(t, "2023-02-01")},
		{OrderDate: mustDate(t, "2023-03-15")},
		{OrderDate: mustDate(t, "2023-01-20")},
	}
	got := MaxOrderDate(rows)
	if got.Format(model.DateLayout) != "2023-03-15" {
		t.Fatalf("max date: got=%v", got)
	}
}
