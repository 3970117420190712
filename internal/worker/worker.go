package worker

import (
	"log"
	"sync"
	"time"

	"github.com/marberj/toktrack/internal/database"
)

type Worker struct {
	DB       *database.Queries
	Ticker   *time.Ticker
	StopChan chan bool
	mu       sync.Mutex
	running  bool
	active   bool
}

func NewWorker(db *database.Queries) *Worker {
	return &Worker{
		DB:       db,
		StopChan: make(chan bool),
	}
}

func (w *Worker) Start(interval time.Duration) {
	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		log.Println("Worker: Scheduler already active, use Restart to change interval")
		return
	}
	w.active = true
	w.mu.Unlock()

	w.Ticker = time.NewTicker(interval)
	go func() {
		defer func() {
			w.mu.Lock()
			w.active = false
			w.mu.Unlock()
		}()
		for {
			select {
			case <-w.Ticker.C:
				w.SnapshotAll()
			case <-w.StopChan:
				w.Ticker.Stop()
				return
			}
		}
	}()
	log.Printf("Background worker started with interval: %v", interval)
}

func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		log.Println("Worker: Scheduler not active")
		return
	}
	w.mu.Unlock()

	w.StopChan <- true
	log.Println("Background worker stopped")
}

func (w *Worker) Restart(interval time.Duration) {
	w.mu.Lock()
	isActive := w.active
	w.mu.Unlock()

	if isActive {
		w.Stop()
		time.Sleep(100 * time.Millisecond)
	}
	w.Start(interval)
}

func (w *Worker) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// SnapshotAll records today's follower counts for every user. Skipped
// when a run is already in progress.
func (w *Worker) SnapshotAll() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		log.Println("Worker: Snapshot already in progress, skipping...")
		return
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	RunSnapshot(w.DB)
}

// Acquire blocks concurrent snapshot runs for the duration of an
// import. The returned release func must be called when done.
func (w *Worker) Acquire() (release func(), ok bool) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil, false
	}
	w.running = true
	w.mu.Unlock()

	return func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}, true
}
