package reasoning

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/arjunsehgal/vitalis/internal/domain"
)

const (
	defaultLearnInterval = 6 * time.Hour
	learnLookback        = 24 * time.Hour
	learnRunTimeout      = 60 * time.Second
)

// LearnerScheduler runs batch edge weight updates on a periodic schedule so
// the causal graph keeps learning without manual triggers.
type LearnerScheduler struct {
	learner *EdgeWeightLearner
	logger  *zap.Logger

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

func NewLearnerScheduler(learner *EdgeWeightLearner, logger *zap.Logger) *LearnerScheduler {
	return &LearnerScheduler{
		learner:  learner,
		logger:   logger,
		interval: defaultLearnInterval,
		stopCh:   make(chan struct{}),
	}
}

func (s *LearnerScheduler) SetInterval(d time.Duration) {
	s.interval = d
}

// Start runs the learner on a periodic schedule in a background goroutine.
func (s *LearnerScheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.logger.Info("edge weight learner started", zap.Duration("interval", s.interval))

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), learnRunTimeout)
				if err := s.Run(ctx); err != nil {
					s.logger.Error("edge weight learner run failed", zap.Error(err))
				}
				cancel()
			case <-s.stopCh:
				s.logger.Info("edge weight learner stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler.
func (s *LearnerScheduler) Stop() {
	close(s.stopCh)
	s.wg.Wait()
}

// Run executes one batch update over the lookback window.
func (s *LearnerScheduler) Run(ctx context.Context) error {
	window := domain.WindowEnding(time.Now().UTC(), learnLookback)
	report, err := s.learner.BatchUpdate(ctx, window)
	if err != nil {
		return err
	}

	s.logger.Info("batch edge update complete",
		zap.Int("meals_scanned", report.MealsScanned),
		zap.Int("meals_skipped", report.MealsSkipped),
		zap.Int("edges_updated", report.EdgesUpdated),
		zap.Int("edges_created", report.EdgesCreated),
		zap.Int("confirmations", report.Confirmations),
		zap.Int("disconfirmations", report.Disconfirmations))

	return nil
}
