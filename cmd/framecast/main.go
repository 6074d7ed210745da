package main

import (
	"context"
	goflag "flag"
	"time"

	"github.com/framecast/framecast/pkg/capture"
	"github.com/framecast/framecast/pkg/config"
	"github.com/framecast/framecast/pkg/logger"
	"github.com/framecast/framecast/pkg/monitoring"
	oss "github.com/framecast/framecast/pkg/os"
	"github.com/framecast/framecast/pkg/recorder"
	flag "github.com/spf13/pflag"
)

var Version = "?"

type appConfig struct {
	Recording  config.Recording  `fig:"recording"`
	Monitoring monitoring.Config `fig:"monitoring"`
	Debug      bool              `fig:"debug"`
	Width      int               `fig:"width"`
	Height     int               `fig:"height"`
	Duration   time.Duration     `fig:"duration"`
}

// framecast records a synthetic frame stream into a video file. It is a
// wiring check for hosts embedding the recorder, not a screen capturer.
func main() {
	conf := appConfig{Width: 640, Height: 360, Duration: 3 * time.Second}
	_ = config.LoadConfig(&conf, "")

	conf.Recording.WithFlags(flag.CommandLine)
	flag.BoolVarP(&conf.Debug, "debug", "d", conf.Debug, "Enable debug logging")
	flag.DurationVar(&conf.Duration, "duration", conf.Duration, "How long to record")
	flag.IntVar(&conf.Width, "width", conf.Width, "Synthetic frame width")
	flag.IntVar(&conf.Height, "height", conf.Height, "Synthetic frame height")
	flag.IntVar(&conf.Monitoring.Port, "monitoring.port", conf.Monitoring.Port, "Monitoring server port")
	flag.BoolVarP(&conf.Monitoring.MetricEnabled, "monitoring.metric", "m", conf.Monitoring.MetricEnabled, "Enable prometheus metrics")
	flag.BoolVarP(&conf.Monitoring.ProfilingEnabled, "monitoring.pprof", "p", conf.Monitoring.ProfilingEnabled, "Enable golang pprof")
	flag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	flag.Parse()

	log := logger.NewConsole(conf.Debug, "rec", false)
	log.Info().Msgf("version %s", Version)

	if conf.Monitoring.IsEnabled() {
		m := monitoring.New(conf.Monitoring, log)
		go m.Run()
		defer func() { _ = m.Shutdown(context.Background()) }()
	}

	rc := conf.Recording.WithDefaults()
	rec := recorder.New(capture.NewSynthetic(conf.Width, conf.Height), log)
	if err := rec.Start(rc); err != nil {
		log.Fatal().Err(err).Msg("could not start recording")
	}

	interval := time.Duration(float64(time.Second) / rc.Fps)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	timeout := time.After(conf.Duration)
	terminated := oss.ExpectTermination()

loop:
	for {
		select {
		case <-ticker.C:
			rec.Tick(interval)
		case <-timeout:
			break loop
		case <-terminated:
			break loop
		}
	}

	if err := rec.Stop(true); err != nil {
		log.Fatal().Err(err).Msg("finalize failed")
	}
	log.Info().Msgf("recorded %v frames over %v", rec.CurrentFrame(), rec.Elapsed())
}
