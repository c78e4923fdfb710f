package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"hirelens/applicant-evaluator/internal/models"
	"hirelens/applicant-evaluator/internal/repositories"
)

// Worker drains queued evaluations through the pipeline and persists each
// outcome. Persistence stays on this side of the pipeline boundary: the
// pipeline itself never writes.
type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(evalID uuid.UUID)
}

type worker struct {
	evalRepo    repositories.EvaluationRepository
	pipeline    PipelineService
	loader      DataLoaderFunc
	jobQueue    chan uuid.UUID
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
}

func NewWorker(
	evalRepo repositories.EvaluationRepository,
	pipeline PipelineService,
	loader DataLoaderFunc,
	concurrency int,
) Worker {
	return &worker{
		evalRepo:    evalRepo,
		pipeline:    pipeline,
		loader:      loader,
		jobQueue:    make(chan uuid.UUID, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(evalID uuid.UUID) {
	select {
	case w.jobQueue <- evalID:
		log.Printf("📥 Evaluation %s enqueued\n", evalID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue evaluation %s\n", evalID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case evalID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing evaluation %s\n", workerID, evalID)
			if err := w.runEvaluation(ctx, evalID); err != nil {
				log.Printf("❌ Worker #%d failed evaluation %s: %v\n", workerID, evalID, err)
			} else {
				log.Printf("✅ Worker #%d completed evaluation %s\n", workerID, evalID)
			}
		}
	}
}

func (w *worker) runEvaluation(ctx context.Context, evalID uuid.UUID) error {
	if err := w.evalRepo.UpdateStatus(evalID, models.StatusProcessing); err != nil {
		return err
	}

	evaluation, err := w.evalRepo.FindByID(evalID)
	if err != nil {
		return err
	}

	input, err := w.loader(ctx, evaluation.ApplicantID, evaluation.JobID)
	if err != nil {
		w.evalRepo.UpdateError(evalID, err.Error(), 0)
		return err
	}
	if input == nil {
		w.evalRepo.UpdateError(evalID, "Candidate data not found", 0)
		return nil
	}

	progress := func(p models.EvaluationProgress) {
		log.Printf("🔄 Evaluation %s: %s (%d%%) %s\n", evalID, p.Stage, p.Percent, p.Message)
	}

	outcome := w.pipeline.EvaluateApplicant(ctx, input, progress)
	if !outcome.Success {
		return w.evalRepo.UpdateError(evalID, outcome.Error, outcome.ProcessingTime)
	}

	return w.evalRepo.UpdateResult(evalID, outcome.Result, outcome.ProcessingTime)
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.evalRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending evaluations\n", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}
