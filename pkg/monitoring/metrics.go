package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FramesDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framecast_frames_dispatched_total",
		Help: "Number of frames handed to encode workers.",
	})
	FramesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framecast_frames_completed_total",
		Help: "Number of frames reported as written to disk.",
	})
	WorkerErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "framecast_worker_errors_total",
		Help: "Number of frame encode failures inside workers.",
	})
	Finalizes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "framecast_finalize_total",
		Help: "Number of finalize runs by outcome.",
	}, []string{"status"})
)
