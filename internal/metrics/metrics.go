package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg            *prometheus.Registry
	RowsRead       prometheus.Counter
	RowsSkipped    prometheus.Counter
	RowsDuplicate  prometheus.Counter
	RowsInvalid    prometheus.Counter
	RowsFiltered   prometheus.Counter
	RowsWritten    prometheus.Counter
	StageSeconds   *prometheus.HistogramVec
	WatermarkEpoch prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	rowsRead := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_rows_read_total"})
	rowsSkipped := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_rows_skipped_total"})
	rowsDuplicate := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_rows_duplicate_total"})
	rowsInvalid := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_rows_invalid_total"})
	rowsFiltered := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_rows_filtered_total"})
	rowsWritten := prometheus.NewCounter(prometheus.CounterOpts{Name: "etl_rows_written_total"})
	stageSeconds := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "etl_stage_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})
	watermark := prometheus.NewGauge(prometheus.GaugeOpts{Name: "etl_watermark_epoch_seconds"})

	r.MustRegister(rowsRead, rowsSkipped, rowsDuplicate, rowsInvalid, rowsFiltered, rowsWritten, stageSeconds, watermark)
	return &Registry{
		reg:            r,
		RowsRead:       rowsRead,
		RowsSkipped:    rowsSkipped,
		RowsDuplicate:  rowsDuplicate,
		RowsInvalid:    rowsInvalid,
		RowsFiltered:   rowsFiltered,
		RowsWritten:    rowsWritten,
		StageSeconds:   stageSeconds,
		WatermarkEpoch: watermark,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
