package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/veioenza/seqr/internal/storage"
)

type SnapshotWriter interface {
	WriteSnapshots(ctx context.Context, store storage.ReportStore) ([]string, error)
}

// CaseReviewReportWorker periodically writes a case review workbook for
// every project into store.
type CaseReviewReportWorker struct {
	writer   SnapshotWriter
	store    storage.ReportStore
	interval time.Duration
	timeout  time.Duration
	log      *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewCaseReviewReportWorker(writer SnapshotWriter, store storage.ReportStore, interval time.Duration, log *zap.Logger) *CaseReviewReportWorker {
	return &CaseReviewReportWorker{
		writer:   writer,
		store:    store,
		interval: interval,
		timeout:  5 * time.Minute,
		log:      log,
		stopChan: make(chan struct{}),
	}
}

func (w *CaseReviewReportWorker) Start() {
	w.log.Info("case review report worker started", zap.Duration("interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.writeReports()

	for {
		select {
		case <-ticker.C:
			w.writeReports()
		case <-w.stopChan:
			w.log.Info("case review report worker stopped")
			return
		}
	}
}

func (w *CaseReviewReportWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stopChan) })
}

func (w *CaseReviewReportWorker) writeReports() {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	locations, err := w.writer.WriteSnapshots(ctx, w.store)
	if err != nil {
		w.log.Error("case review report failed", zap.Error(err))
		return
	}
	w.log.Info("case review reports written", zap.Int("projects", len(locations)))
}
