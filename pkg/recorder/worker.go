package recorder

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/framecast/framecast/pkg/capture"
	"github.com/framecast/framecast/pkg/encoder/ffmpeg"
	"github.com/framecast/framecast/pkg/monitoring"
)

// job carries one captured frame to a worker. The frame channel is
// populated asynchronously by the capture primitive, so a worker may
// receive the job descriptor before the pixels arrive.
type job struct {
	frame <-chan capture.Frame
	seq   int
	dir   string
}

type worker struct {
	id   int
	jobs chan job      // single-slot handoff
	idle chan struct{} // signalled after every job, used by the saturation wait
	errs chan error    // last unsurfaced encode failure
	busy atomic.Bool
}

type pool struct {
	workers []*worker
	done    chan int // shared completion channel, sequence numbers of written frames
	wg      sync.WaitGroup
}

func newPool(n int, compression int) *pool {
	p := &pool{done: make(chan int, 2*n)}
	enc := newPNGWriter(compression)
	for i := 1; i <= n; i++ {
		w := &worker{
			id:   i,
			jobs: make(chan job, 1),
			idle: make(chan struct{}, 1),
			errs: make(chan error, 1),
		}
		p.workers = append(p.workers, w)
		p.wg.Add(1)
		go w.run(p.done, enc, &p.wg)
	}
	return p
}

func (w *worker) run(done chan<- int, enc *pngWriter, wg *sync.WaitGroup) {
	defer wg.Done()
	for j := range w.jobs {
		frame := <-j.frame
		name := filepath.Join(j.dir, fmt.Sprintf(ffmpeg.InputPattern, j.seq))
		if err := enc.Save(name, frame); err != nil {
			w.fail(err)
		} else {
			done <- j.seq
		}
		w.busy.Store(false)
		select {
		case w.idle <- struct{}{}:
		default:
		}
	}
}

func (w *worker) fail(err error) {
	monitoring.WorkerErrors.Inc()
	select {
	case w.errs <- err:
	default:
	}
}

// pollError returns an encode failure raised since the last poll, if any.
func (w *worker) pollError() error {
	select {
	case err := <-w.errs:
		return err
	default:
		return nil
	}
}

// awaitIdle blocks until the worker has no job in flight. Stale idle
// tokens from earlier jobs are drained until the busy flag agrees.
func (w *worker) awaitIdle() {
	for w.busy.Load() {
		<-w.idle
	}
}

// findIdle returns the first idle worker in id order, or nil.
func (p *pool) findIdle() *worker {
	for _, w := range p.workers {
		if !w.busy.Load() {
			return w
		}
	}
	return nil
}

// dispatch hands a job to an idle worker. The caller must have
// established that the worker is idle.
func (p *pool) dispatch(w *worker, frame <-chan capture.Frame, seq int, dir string) {
	w.busy.Store(true)
	w.jobs <- job{frame: frame, seq: seq, dir: dir}
}

// shutdown closes the job channels so the workers exit after their
// current job. It does not wait for them.
func (p *pool) shutdown() {
	for _, w := range p.workers {
		close(w.jobs)
	}
}
