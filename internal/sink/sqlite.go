package sink

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"orderetl/internal/model"
	"orderetl/internal/schema"
)

// sqlite column types matching schema.Columns order.
var sqliteTypes = map[string]string{
	"order_id":          "TEXT PRIMARY KEY",
	"order_date":        "TEXT NOT NULL",
	"order_month":       "TEXT NOT NULL",
	"customer_id":       "TEXT NOT NULL",
	"product_id":        "TEXT NOT NULL",
	"quantity":          "INTEGER NOT NULL",
	"price_usd":         "REAL NOT NULL",
	"total_order_value": "REAL NOT NULL",
	"status":            "TEXT NOT NULL",
	"delivery_address":  "TEXT",
}

// SQLiteSink writes the batch to a SQLite table, replacing any previous
// contents (drop and recreate, as a full batch rewrite).
type SQLiteSink struct {
	db    *sql.DB
	table string
}

func NewSQLiteSink(path string, table string) (*SQLiteSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("set journal_mode: %w", err)
	}
	return &SQLiteSink{db: db, table: table}, nil
}

func (s *SQLiteSink) Name() string { return "sqlite" }

func (s *SQLiteSink) Close() error { return s.db.Close() }

func (s *SQLiteSink) Write(rows []model.Processed) error {
	if _, err := s.db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", s.table)); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}
	defs := make([]string, 0, len(schema.Columns))
	for _, col := range schema.Columns {
		defs = append(defs, col+" "+sqliteTypes[col])
	}
	ddl := fmt.Sprintf("CREATE TABLE %s (%s)", s.table, strings.Join(defs, ", "))
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(schema.Columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		s.table, strings.Join(schema.Columns, ", "), placeholders,
	))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	for _, r := range rows {
		_, err := stmt.Exec(
			r.OrderID,
			r.OrderDate.Format(model.DateLayout),
			r.OrderMonth,
			r.CustomerID,
			r.ProductID,
			r.Quantity,
			r.PriceUSD,
			r.TotalValue,
			r.Status,
			r.DeliveryAddress,
		)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("insert order %s: %w", r.OrderID, err)
		}
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("close stmt: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Verify returns the row count of the target table.
func (s *SQLiteSink) Verify() (int, error) {
	var n int
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count rows: %w", err)
	}
	return n, nil
}
