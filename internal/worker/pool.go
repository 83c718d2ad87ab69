// Package worker provides background processing for chat persistence and
// preview-clip analysis, keeping network and disk work off the request path.
package worker

import (
	"context"
	"log"
	"sync"

	"github.com/moodtune-labs/moodtune/backend/internal/core/domain"
	"github.com/moodtune-labs/moodtune/backend/internal/core/ports"
)

// maxPreviewsPerJob bounds how many preview clips one job may download.
const maxPreviewsPerJob = 3

// Job persists one analyzed chat message and optionally analyzes the
// preview clips of the tracks suggested with it.
type Job struct {
	Message     domain.ChatMessage
	PreviewURLs []string
}

// Pool manages background workers for async jobs.
type Pool struct {
	repo ports.SessionRepository
	jobs chan Job
	wg   sync.WaitGroup
}

// NewPool creates a worker pool with the given queue size.
func NewPool(repo ports.SessionRepository, queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{repo: repo, jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking. A full queue drops the job: losing
// one history entry is preferable to stalling a chat reply.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping job for message %s", job.Message.ID)
	}
}

func (p *Pool) processJob(job Job) {
	ctx := context.Background()

	if err := p.repo.AppendMessage(ctx, job.Message); err != nil {
		log.Printf("WARN worker: failed to persist message %s: %v", job.Message.ID, err)
		return
	}

	urls := job.PreviewURLs
	if len(urls) > maxPreviewsPerJob {
		urls = urls[:maxPreviewsPerJob]
	}

	var total float64
	var analyzed int
	for _, url := range urls {
		if url == "" {
			continue
		}
		energy, err := AnalyzePreviewFunc(url)
		if err != nil {
			log.Printf("WARN worker: preview analysis failed for %s: %v", job.Message.ID, err)
			continue
		}
		total += energy
		analyzed++
	}
	if analyzed == 0 {
		return
	}

	if err := p.repo.UpdateMessageEnergy(ctx, job.Message.ID, total/float64(analyzed)); err != nil {
		log.Printf("WARN worker: failed to update energy for %s: %v", job.Message.ID, err)
	}
}
