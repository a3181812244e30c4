package services

import (
	"log"
	"sync"
	"time"

	"burrow/internal/db"
	"burrow/internal/models"
)

// RecountWorker repairs counter drift off the hot path: the vote handler
// queues each target it touched after commit. Queued targets are
// deduplicated, batched and run through the replace-semantics recompute,
// so a burst of votes on the same target costs one rescan.
type RecountWorker struct {
	reconciler *ReconcileService
	queue      chan models.Target
	pending    map[models.Target]bool
	mu         sync.Mutex
}

var (
	recountWorker *RecountWorker
	recountOnce   sync.Once
)

// GetRecountWorker returns the singleton worker, starting it on first use.
func GetRecountWorker() *RecountWorker {
	recountOnce.Do(func() {
		recountWorker = newRecountWorker(NewReconcileService(db.DB))
		go recountWorker.run()
	})
	return recountWorker
}

func newRecountWorker(reconciler *ReconcileService) *RecountWorker {
	return &RecountWorker{
		reconciler: reconciler,
		queue:      make(chan models.Target, 1000), // buffered so callers never block
		pending:    make(map[models.Target]bool),
	}
}

// Schedule queues a target for recount. Duplicate requests for a target
// already waiting are dropped.
func (w *RecountWorker) Schedule(target models.Target) {
	w.mu.Lock()
	if w.pending[target] {
		w.mu.Unlock()
		return
	}
	w.pending[target] = true
	w.mu.Unlock()

	select {
	case w.queue <- target:
	default:
		// Queue full: drop the request and clear the pending mark so a
		// later schedule can try again.
		w.mu.Lock()
		delete(w.pending, target)
		w.mu.Unlock()
		log.Printf("Recount queue full, dropping %s %d", target.Kind, target.ID)
	}
}

func (w *RecountWorker) run() {
	batch := make([]models.Target, 0, 50)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case target := <-w.queue:
			batch = append(batch, target)
			if len(batch) >= 50 {
				w.processBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				w.processBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

func (w *RecountWorker) processBatch(targets []models.Target) {
	for _, target := range targets {
		if err := w.reconciler.RecomputeCounters(target); err != nil {
			log.Printf("Recount of %s %d failed: %v", target.Kind, target.ID, err)
		}

		w.mu.Lock()
		delete(w.pending, target)
		w.mu.Unlock()
	}
}
