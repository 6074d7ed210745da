package recorder

import (
	"os"
	"path/filepath"

	"github.com/framecast/framecast/pkg/monitoring"
	oss "github.com/framecast/framecast/pkg/os"
	"github.com/hashicorp/go-multierror"
)

// finalize drains the pool, runs the external encoder over the frame
// sequence and, when the encode succeeded and cleanup is on, removes
// the intermediate frames together with their directory.
func (s *session) finalize() error {
	s.drain()

	out := oss.UniquePath(s.dir, "."+s.conf.Format)

	if err := s.encode(s.dir, s.conf.Fps, s.conf.Format, out, s.log); err != nil {
		monitoring.Finalizes.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("video encode failed, frames kept")
		return err
	}
	monitoring.Finalizes.WithLabelValues("ok").Inc()
	s.log.Info().Msgf("video saved to %v", out)

	if !s.conf.Cleanup {
		return nil
	}
	return s.cleanup()
}

// drain closes the pool and waits for in-flight jobs, absorbing their
// completions so the counter matches what is on disk before encoding.
func (s *session) drain() {
	s.pool.shutdown()
	idle := make(chan struct{})
	go func() {
		s.pool.wg.Wait()
		close(idle)
	}()
	for {
		select {
		case <-s.pool.done:
			s.frames++
			monitoring.FramesCompleted.Inc()
		case <-idle:
			for {
				select {
				case <-s.pool.done:
					s.frames++
					monitoring.FramesCompleted.Inc()
				default:
					return
				}
			}
		}
	}
}

func (s *session) cleanup() error {
	var result *multierror.Error

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if err := os.Remove(s.dir); err != nil {
		result = multierror.Append(result, err)
		s.log.Error().Err(err).Msgf("could not remove %v", s.dir)
	} else {
		s.log.Info().Msgf("removed frame directory %v", s.dir)
	}
	return result.ErrorOrNil()
}
