package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"orderetl/internal/config"
	"orderetl/internal/cursor"
	"orderetl/internal/logging"
	"orderetl/internal/manifest"
	"orderetl/internal/metrics"
	"orderetl/internal/pipeline"
	"orderetl/internal/sink"
)

var (
	runInput string
	runSince string
	runFull  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the ETL pipeline once",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if runInput != "" {
			cfg.Input.File = runInput
		}
		if runSince != "" {
			cfg.Cursor.Since = runSince
		}

		log, err := logging.New(cfg.Log.File, cfg.Log.Level)
		if err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		defer log.Sync()

		// Cursor backend
		var cur cursor.Store
		switch cfg.Cursor.Backend {
		case "badger":
			cur, err = cursor.NewBadgerStore(cfg.Cursor.Dir)
		case "memory":
			cur = cursor.NewInMemoryStore()
		default:
			cur, err = cursor.NewPebbleStore(cfg.Cursor.Dir)
		}
		if err != nil {
			return fmt.Errorf("init cursor store: %w", err)
		}
		defer cur.Close()

		// Sinks
		sq, err := sink.NewSQLiteSink(cfg.Output.SQLite, cfg.Output.Table)
		if err != nil {
			return fmt.Errorf("init sqlite sink: %w", err)
		}
		defer sq.Close()
		out := sink.NewMulti(
			sq,
			sink.NewCSVSink(cfg.Output.CSV),
			sink.NewParquetSink(cfg.Output.Parquet),
		)

		// Manifest publishers
		maniFS := manifest.NewFilesystemManifest(cfg.Manifest.Dir)
		var pub manifest.Publisher = maniFS
		if (cfg.Manifest.Sink == "kafka" || cfg.Manifest.Sink == "both") && cfg.Manifest.KafkaBootstrap != "" {
			maniK := manifest.NewKafkaManifest(cfg.Manifest.KafkaBootstrap, cfg.Manifest.Topic, cfg.Manifest.Key)
			if cfg.Manifest.Sink == "kafka" {
				pub = maniK
			} else {
				pub = manifest.MultiPublisher(maniFS, maniK)
			}
		}

		mreg := metrics.NewRegistry()
		if cfg.Metrics.Addr != "" {
			go serveMetrics(log, cfg.Metrics.Addr, mreg.Handler())
		}

		p := pipeline.New(log, cur, out, pub, mreg)
		m, err := p.Run(pipeline.Options{
			InputFile: cfg.Input.File,
			Since:     cfg.Cursor.Since,
			FullLoad:  runFull,
		})
		if err != nil {
			log.Errorw("pipeline failed", "error", err)
			return err
		}
		log.Infow("run summary",
			"runId", m.RunID,
			"read", m.RowsRead,
			"duplicate", m.RowsDuplicate,
			"invalid", m.RowsInvalid,
			"filtered", m.RowsFiltered,
			"written", m.RowsWritten,
			"watermark", m.WatermarkAfter,
		)
		return nil
	},
}

// serveMetrics blocks on the listener; a bad address must surface in
// the logs instead of silently yielding no endpoint.
func serveMetrics(log *zap.SugaredLogger, addr string, h http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Errorw("metrics listener failed", "addr", addr, "error", err)
	}
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "input CSV path (overrides config and DATA_FILE)")
	runCmd.Flags().StringVar(&runSince, "since", "", "watermark override, YYYY-MM-DD")
	runCmd.Flags().BoolVar(&runFull, "full", false, "ignore the watermark and load everything")
	runCmd.SilenceUsage = true
}
