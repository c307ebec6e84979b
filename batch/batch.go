// Package batch fans the tile compositor out over a worker pool: each
// dump is independent, so the only shared mutable state is a progress
// counter. Cancellation lets in-flight work finish but stops new dispatch.
package batch

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/dcssrec/ttyrecgen/compose"
	"github.com/dcssrec/ttyrecgen/dump"
	"github.com/dcssrec/ttyrecgen/pngfile"
)

// Job names one dump CSV to render into a PNG alongside it.
type Job struct {
	FrameNo int
	CSVPath string
}

// Progress is the single shared counter: the number of jobs completed so
// far, regardless of outcome.
type Progress struct {
	done atomic.Int64
}

// Done returns the number of jobs completed so far.
func (p *Progress) Done() int64 { return p.done.Load() }

// Run renders every job, sequentially or via a bounded worker pool. It
// returns a non-nil error if any job failed; a failed job is logged and
// does not stop the others. ctx cancellation stops dispatch of new jobs
// but lets in-flight jobs finish.
func Run(ctx context.Context, jobs []Job, r *compose.Renderer, parallel bool, progress *Progress) error {
	if progress == nil {
		progress = &Progress{}
	}

	workers := 1
	if parallel {
		workers = runtime.GOMAXPROCS(0)
		if workers < 1 {
			workers = 1
		}
	}

	jobCh := make(chan Job)
	var failed atomic.Bool

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				if err := renderOne(job, r); err != nil {
					log.Printf("batch: frame %d failed: %v", job.FrameNo, err)
					failed.Store(true)
				}
				progress.done.Add(1)
			}
		}()
	}

dispatch:
	for _, job := range jobs {
		// select picks at random when both cases are ready, so check for
		// cancellation first.
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break dispatch
		case jobCh <- job:
		}
	}
	close(jobCh)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	if failed.Load() {
		return fmt.Errorf("batch: one or more frames failed to render")
	}
	return nil
}

func renderOne(job Job, r *compose.Renderer) error {
	f, err := os.Open(job.CSVPath)
	if err != nil {
		return err
	}
	records, err := dump.ReadCSV(f)
	f.Close()
	if err != nil {
		return err
	}

	img := r.Render(records)

	outPath := filepath.Join(filepath.Dir(job.CSVPath), strconv.Itoa(job.FrameNo)+".png")
	return pngfile.WriteAtomic(outPath, img)
}
