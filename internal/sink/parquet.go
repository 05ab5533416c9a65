package sink

import (
	"fmt"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"orderetl/internal/model"
)

// parquetOrder mirrors schema.Columns for the columnar backup.
type parquetOrder struct {
	OrderID         string  `parquet:"name=order_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderDate       string  `parquet:"name=order_date, type=BYTE_ARRAY, convertedtype=UTF8"`
	OrderMonth      string  `parquet:"name=order_month, type=BYTE_ARRAY, convertedtype=UTF8"`
	CustomerID      string  `parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	ProductID       string  `parquet:"name=product_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Quantity        int64   `parquet:"name=quantity, type=INT64"`
	PriceUSD        float64 `parquet:"name=price_usd, type=DOUBLE"`
	TotalValue      float64 `parquet:"name=total_order_value, type=DOUBLE"`
	Status          string  `parquet:"name=status, type=BYTE_ARRAY, convertedtype=UTF8"`
	DeliveryAddress string  `parquet:"name=delivery_address, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ParquetSink writes the batch to a SNAPPY-compressed Parquet file.
type ParquetSink struct {
	path string
}

func NewParquetSink(path string) *ParquetSink {
	return &ParquetSink{path: path}
}

func (p *ParquetSink) Name() string { return "parquet" }

func (p *ParquetSink) Write(rows []model.Processed) error {
	fw, err := local.NewLocalFileWriter(p.path)
	if err != nil {
		return fmt.Errorf("create file writer: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, new(parquetOrder), 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, r := range rows {
		rec := parquetOrder{
			OrderID:         r.OrderID,
			OrderDate:       r.OrderDate.Format(model.DateLayout),
			OrderMonth:      r.OrderMonth,
			CustomerID:      r.CustomerID,
			ProductID:       r.ProductID,
			Quantity:        r.Quantity,
			PriceUSD:        r.PriceUSD,
			TotalValue:      r.TotalValue,
			Status:          r.Status,
			DeliveryAddress: r.DeliveryAddress,
		}
		if err := pw.Write(rec); err != nil {
			_ = fw.Close()
			return fmt.Errorf("write order %s: %w", r.OrderID, err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return fmt.Errorf("finalize parquet: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
