package monitoring

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"

	"github.com/framecast/framecast/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Port             int    `fig:"port"`
	URLPrefix        string `fig:"url_prefix"`
	MetricEnabled    bool   `fig:"metric"`
	ProfilingEnabled bool   `fig:"pprof"`
}

func (c Config) IsEnabled() bool { return c.MetricEnabled || c.ProfilingEnabled }

type Monitoring struct {
	conf   Config
	log    *logger.Logger
	server *http.Server
}

// New creates new monitoring service.
func New(conf Config, log *logger.Logger) *Monitoring {
	h := http.NewServeMux()

	if conf.ProfilingEnabled {
		prefix := conf.URLPrefix + "/debug/pprof"
		h.HandleFunc(prefix+"/", pprof.Index)
		h.HandleFunc(prefix+"/cmdline", pprof.Cmdline)
		h.HandleFunc(prefix+"/profile", pprof.Profile)
		h.HandleFunc(prefix+"/symbol", pprof.Symbol)
		h.HandleFunc(prefix+"/trace", pprof.Trace)
		h.Handle(prefix+"/allocs", pprof.Handler("allocs"))
		h.Handle(prefix+"/block", pprof.Handler("block"))
		h.Handle(prefix+"/goroutine", pprof.Handler("goroutine"))
		h.Handle(prefix+"/heap", pprof.Handler("heap"))
		h.Handle(prefix+"/mutex", pprof.Handler("mutex"))
	}
	if conf.MetricEnabled {
		h.Handle(conf.URLPrefix+"/metrics", promhttp.Handler())
	}

	return &Monitoring{
		conf: conf,
		log:  log,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%d", conf.Port),
			Handler: h,
		},
	}
}

func (m *Monitoring) Run() {
	m.log.Info().Msgf("starting monitoring server at %v", m.server.Addr)
	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		m.log.Error().Err(err).Msg("monitoring server failed")
	}
}

func (m *Monitoring) Shutdown(ctx context.Context) error {
	m.log.Info().Msg("shutting down monitoring server")
	return m.server.Shutdown(ctx)
}

func (m *Monitoring) String() string {
	return fmt.Sprintf("monitoring::%s:%d", m.conf.URLPrefix, m.conf.Port)
}
