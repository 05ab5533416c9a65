package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"orderetl/internal/cursor"
	"orderetl/internal/extract"
	"orderetl/internal/manifest"
	"orderetl/internal/metrics"
	"orderetl/internal/model"
	"orderetl/internal/schema"
	"orderetl/internal/sink"
	"orderetl/internal/transform"
	"orderetl/internal/validate"
)

// Options are per-run knobs on top of the wired dependencies.
type Options struct {
	InputFile string
	Since     string // explicit watermark override, YYYY-MM-DD
	FullLoad  bool   // ignore cursor and override, process everything
}

// Pipeline runs the batch end to end: extract, validate, transform,
// enforce schema, incremental filter, persist, verify, advance cursor,
// publish manifest.
type Pipeline struct {
	log *zap.SugaredLogger
	cur cursor.Store
	out *sink.Multi
	pub manifest.Publisher
	met *metrics.Registry
}

func New(log *zap.SugaredLogger, cur cursor.Store, out *sink.Multi, pub manifest.Publisher, met *metrics.Registry) *Pipeline {
	return &Pipeline{log: log, cur: cur, out: out, pub: pub, met: met}
}

func (p *Pipeline) Run(opts Options) (manifest.Manifest, error) {
	m := manifest.Manifest{
		RunID:     uuid.NewString(),
		InputFile: opts.InputFile,
	}
	p.log.Infow("pipeline started", "runId", m.RunID, "input", opts.InputFile)

	// Extract
	stop := p.stageTimer("extract")
	ext, err := extract.Load(opts.InputFile)
	stop()
	if err != nil {
		return m, fmt.Errorf("load input: %w", err)
	}
	m.RowsRead = len(ext.Rows)
	m.RowsSkipped = ext.Skipped
	p.met.RowsRead.Add(float64(len(ext.Rows)))
	p.met.RowsSkipped.Add(float64(ext.Skipped))
	p.log.Infow("raw data loaded", "rows", len(ext.Rows), "skipped", ext.Skipped)

	// Validate
	stop = p.stageTimer("validate")
	vres := validate.Clean(ext.Rows)
	stop()
	for _, d := range vres.Dropped {
		p.log.Warnw("row dropped", "line", d.Line, "reason", d.Reason)
	}
	m.RowsDuplicate = vres.Duplicates
	m.RowsInvalid = vres.Invalid + vres.Unparseable
	p.met.RowsDuplicate.Add(float64(vres.Duplicates))
	p.met.RowsInvalid.Add(float64(vres.Invalid + vres.Unparseable))
	p.log.Infow("validation complete", "valid", len(vres.Valid), "removed", len(ext.Rows)-len(vres.Valid))

	// Transform
	stop = p.stageTimer("transform")
	tres := transform.Derive(vres.Valid)
	stop()
	m.RowsInvalid += tres.Dropped
	p.log.Infow("transform complete", "rows", len(tres.Rows), "dropped", tres.Dropped)

	// Schema enforcement is structural: every sink consumes schema.Columns.
	p.log.Infow("schema enforced", "columns", len(schema.Columns))

	// Incremental filter
	wm, wmSource, err := p.resolveWatermark(opts)
	if err != nil {
		return m, err
	}
	if !wm.IsZero() {
		m.WatermarkBefore = wm.Format(model.DateLayout)
		p.log.Infow("incremental load", "watermark", m.WatermarkBefore, "source", wmSource)
	} else {
		p.log.Infow("full load: no watermark")
	}
	stop = p.stageTimer("filter")
	batch := transform.FilterAfter(tres.Rows, wm)
	stop()
	m.RowsFiltered = len(tres.Rows) - len(batch)
	p.met.RowsFiltered.Add(float64(m.RowsFiltered))
	p.log.Infow("incremental filter applied", "new", len(batch), "filtered", m.RowsFiltered)

	// Persist
	stop = p.stageTimer("persist")
	err = p.out.Write(batch)
	stop()
	if err != nil {
		return m, fmt.Errorf("persist: %w", err)
	}
	m.RowsWritten = len(batch)
	p.met.RowsWritten.Add(float64(len(batch)))
	for _, s := range p.out.Sinks() {
		m.Outputs = append(m.Outputs, s.Name())
	}

	// Verify sinks that support it
	for _, s := range p.out.Sinks() {
		ver, ok := s.(sink.Verifier)
		if !ok {
			continue
		}
		n, err := ver.Verify()
		if err != nil {
			return m, fmt.Errorf("verify %s: %w", s.Name(), err)
		}
		if n != len(batch) {
			return m, fmt.Errorf("verify %s: %d rows, want %d", s.Name(), n, len(batch))
		}
		p.log.Infow("output verified", "sink", s.Name(), "rows", n)
	}

	// Advance the watermark only after every sink succeeded.
	if next := transform.MaxOrderDate(batch); !next.IsZero() && next.After(wm) {
		c := cursor.Cursor{LastLoadDate: next.Format(model.DateLayout), UpdatedAt: cursor.NowUnix()}
		if err := p.cur.Save(c); err != nil {
			return m, fmt.Errorf("save cursor: %w", err)
		}
		m.WatermarkAfter = c.LastLoadDate
		p.met.WatermarkEpoch.Set(float64(next.Unix()))
		p.log.Infow("watermark advanced", "lastLoadDate", c.LastLoadDate)
	} else {
		m.WatermarkAfter = m.WatermarkBefore
	}

	if p.pub != nil {
		if err := p.pub.PublishLatest(m); err != nil {
			return m, fmt.Errorf("publish manifest: %w", err)
		}
	}
	p.log.Infow("pipeline completed", "runId", m.RunID, "written", m.RowsWritten)
	return m, nil
}

// resolveWatermark picks the cutoff: explicit override, then persisted
// cursor, then none (full load).
func (p *Pipeline) resolveWatermark(opts Options) (time.Time, string, error) {
	if opts.FullLoad {
		return time.Time{}, "", nil
	}
	if opts.Since != "" {
		t, err := time.Parse(model.DateLayout, opts.Since)
		if err != nil {
			return time.Time{}, "", fmt.Errorf("parse since %q: %w", opts.Since, err)
		}
		return t, "override", nil
	}
	c, ok, err := p.cur.Load()
	if err != nil {
		return time.Time{}, "", fmt.Errorf("load cursor: %w", err)
	}
	if !ok {
		return time.Time{}, "", nil
	}
	t, err := time.Parse(model.DateLayout, c.LastLoadDate)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("parse cursor date %q: %w", c.LastLoadDate, err)
	}
	return t, "cursor", nil
}

func (p *Pipeline) stageTimer(stage string) func() {
	start := time.Now()
	return func() {
		p.met.StageSeconds.WithLabelValues(stage).Observe(time.Since(start).Seconds())
	}
}
