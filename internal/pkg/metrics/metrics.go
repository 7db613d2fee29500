package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Validations counts validate-otp outcomes by result
	// (success|missing_field|invalid_format|mismatch|store_error).
	Validations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sheets_otp_validations_total",
			Help: "Total number of OTP validation requests by outcome",
		},
		[]string{"result"},
	)

	// StoreReadLatency measures single-cell reads against the spreadsheet (cell: email|otp).
	StoreReadLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sheets_otp_store_read_seconds",
			Help:    "Latency of spreadsheet cell reads",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"cell"},
	)
)
