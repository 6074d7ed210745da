// Package recorder turns a live stream of rendered frames into a PNG
// sequence on disk and assembles it into a video file on stop.
package recorder

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/framecast/framecast/pkg/capture"
	"github.com/framecast/framecast/pkg/config"
	"github.com/framecast/framecast/pkg/encoder/ffmpeg"
	"github.com/framecast/framecast/pkg/logger"
	"github.com/framecast/framecast/pkg/monitoring"
	oss "github.com/framecast/framecast/pkg/os"
)

var ErrBusy = errors.New("recorder: a session is already recording")

type encodeFunc func(dir string, fps float64, format string, out string, log *logger.Logger) error

// Recorder guards at most one live session. The host calls Tick once
// per rendered frame; everything else is start/stop and status polling.
type Recorder struct {
	mu sync.Mutex

	src     capture.Source
	log     *logger.Logger
	lock    *oss.Flock
	session *session

	encode encodeFunc
}

type session struct {
	conf config.Recording
	dir  string // absolute frame sequence directory
	src  capture.Source
	pool *pool
	log  *logger.Logger

	encode encodeFunc

	recording bool
	elapsed   time.Duration
	frames    int // completed-frame counter, doubles as the next dispatch sequence
}

func New(src capture.Source, log *logger.Logger) *Recorder {
	return &Recorder{src: src, log: log, encode: ffmpeg.Encode}
}

// Start validates the config and opens a new session: a unique frame
// directory under the storage root and a fresh worker pool. Nothing is
// created when validation fails.
func (r *Recorder) Start(conf config.Recording) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.session != nil && r.session.recording {
		return ErrBusy
	}
	conf = conf.WithDefaults()
	if err := conf.Validate(); err != nil {
		return err
	}
	root, err := filepath.Abs(conf.Root)
	if err != nil {
		return err
	}
	if err := oss.CheckCreateDir(root); err != nil {
		return err
	}
	lock, err := oss.NewFileLock(filepath.Join(root, ".framecast.lock"))
	if err != nil {
		return err
	}
	if err := lock.TryLock(); err != nil {
		return err
	}
	dir := oss.UniquePath(filepath.Join(root, conf.Name), "")
	if err := oss.CheckCreateDir(dir); err != nil {
		_ = lock.Unlock()
		return err
	}

	r.log.Info().Msgf("recording to %v with %v workers", dir, conf.Threads)
	r.lock = lock
	r.session = &session{
		conf:      conf,
		dir:       dir,
		src:       r.src,
		pool:      newPool(conf.Threads, conf.CompressionLevel),
		log:       r.log,
		encode:    r.encode,
		recording: true,
	}
	return nil
}

// Stop ends the session. With finalize the frame sequence is handed to
// the external encoder and optionally cleaned up; without it the
// directory and frames are left exactly as they are. In-flight jobs are
// never cancelled.
func (r *Recorder) Stop(finalize bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.session
	if s == nil {
		return nil
	}
	wasRecording := s.recording
	s.recording = false
	if r.lock != nil {
		defer func() {
			_ = r.lock.Unlock()
			r.lock = nil
		}()
	}
	if !wasRecording {
		return nil
	}
	if !finalize {
		s.pool.shutdown()
		r.log.Info().Msgf("recording stopped, %v frames kept in %v", s.frames, s.dir)
		return nil
	}
	return s.finalize()
}

// Tick runs the per-frame schedule: capture into an idle worker,
// dispatch, poll completions. A no-op unless recording.
func (r *Recorder) Tick(dt time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s := r.session; s != nil && s.recording {
		s.tick(dt)
	}
}

func (s *session) tick(dt time.Duration) {
	s.elapsed += dt

	// any arrival means one more frame is on disk; the delivered
	// sequence number itself is not used. Polled before dispatch so
	// the counter, which doubles as the next sequence number, is
	// current when the next frame is named.
	select {
	case <-s.pool.done:
		s.frames++
		monitoring.FramesCompleted.Inc()
	default:
	}

	w := s.pool.findIdle()
	if w == nil {
		// pool saturated, stall the tick on worker 1 until it idles
		w = s.pool.workers[0]
		w.awaitIdle()
		// absorb the completion that freed the worker so its
		// sequence number is not reissued below
		select {
		case <-s.pool.done:
			s.frames++
			monitoring.FramesCompleted.Inc()
		default:
		}
	}

	frame := make(chan capture.Frame, 1)
	s.src.Capture(frame)
	s.pool.dispatch(w, frame, s.frames, s.dir)
	monitoring.FramesDispatched.Inc()

	for _, w := range s.pool.workers {
		if err := w.pollError(); err != nil {
			s.log.Error().Err(err).Msgf("worker %v dropped a frame", w.id)
		}
	}
}

// Recording reports whether a session is live.
func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.session != nil && r.session.recording
}

// CurrentFrame returns the completed-frame counter. It approximates the
// number of frames written so far, not which frames those are.
func (r *Recorder) CurrentFrame() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return 0
	}
	return r.session.frames
}

// Elapsed returns the accumulated tick time of the session.
func (r *Recorder) Elapsed() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return 0
	}
	return r.session.elapsed
}

// OutputPath returns the absolute frame sequence directory of the
// session, or an empty string when none was started.
func (r *Recorder) OutputPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return ""
	}
	return r.session.dir
}
