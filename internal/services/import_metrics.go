package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importPreviewsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_previews_total",
		Help: "Number of statement previews generated, by source format",
	}, []string{"source"})

	importedRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "import_rows_imported_total",
		Help: "Number of transactions persisted through confirmed imports",
	})

	failedRowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "import_rows_failed_total",
		Help: "Number of rows rejected during confirmed imports",
	})

	categoriesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "import_categories_created_total",
		Help: "Number of categories auto-created during confirmed imports",
	})

	previewDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "import_preview_duration_seconds",
		Help:    "Time spent parsing and enriching a statement preview",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
)
