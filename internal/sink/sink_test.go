package sink

import (
	"errors"
	"testing"
	"time"

	"orderetl/internal/model"
)

func sampleBatch(t *testing.T) []model.Processed {
	t.Helper()
	d1, _ := time.Parse(model.DateLayout, "2023-01-10")
	d2, _ := time.Parse(model.DateLayout, "2023-02-20")
	return []model.Processed{
		{
			OrderID: "o1", OrderDate: d1, OrderMonth: "2023-01",
			CustomerID: "C001", ProductID: "P100",
			Quantity: 2, PriceUSD: 9.99, TotalValue: 19.98,
			Status: "completed", DeliveryAddress: "1 Main St, Springfield",
		},
		{
			OrderID: "o2", OrderDate: d2, OrderMonth: "2023-02",
			CustomerID: "C002", ProductID: "P200",
			Quantity: 1, PriceUSD: 5, TotalValue: 5,
			Status: "pending", DeliveryAddress: "2 Oak Ave",
		},
	}
}

type fakeSink struct {
	name   string
	writes int
	fail   bool
}

func (f *fakeSink) Name() string { return f.name }

func (f *fakeSink) Write(rows []model.Processed) error {
	if f.fail {
		return errors.New("boom")
	}
	f.writes++
	return nil
}

func TestMulti_FansOut(t *testing.T) {
	a := &fakeSink{name: "a"}
	b := &fakeSink{name: "b"}
	m := NewMulti(a, b)
	if err := m.Write(sampleBatch(t)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if a.writes != 1 || b.writes != 1 {
		t.Fatalf("fan-out failed: a=%d b=%d", a.writes, b.writes)
	}
}

func TestMulti_StopsOnFirstError(t *testing.T) {
	a := &fakeSink{name: "a", fail: true}
	b := &fakeSink{name: "b"}
	m := NewMulti(a, b)
	if err := m.Write(sampleBatch(t)); err == nil {
		t.Fatalf("expected error")
	}
	if b.writes != 0 {
		t.Fatalf("later sink should not be written after failure")
	}
}
