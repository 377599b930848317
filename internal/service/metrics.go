package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pixStatusPolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cinepix_pix_status_polls_total",
		Help: "PIX status polls by result.",
	}, []string{"result"})

	pixSnapshotMerges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cinepix_pix_snapshot_merges_total",
		Help: "Status responses merged into the payment snapshot.",
	})
)
