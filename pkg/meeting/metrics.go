package meeting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	joinAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetbot_join_attempts_total",
		Help: "Meeting join attempts by platform.",
	}, []string{"platform"})

	joinFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetbot_join_failures_total",
		Help: "Failed join attempts by platform and failure reason.",
	}, []string{"platform", "reason"})

	joinDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "meetbot_join_duration_seconds",
		Help:    "Wall time from navigation to confirmed join.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 8),
	})

	admissionsInferred = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meetbot_admissions_total",
		Help: "Participants admitted by the organizer auto-admit loop.",
	})
)
