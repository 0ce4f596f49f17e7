package service

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/config"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/model"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/library/internal/repository"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/circuit_breaker"
	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/kafka"
)

const (
	popularBooksLimit  = 5
	recentBorrowsLimit = 5
)

type Service struct {
	log    *zap.Logger
	repo   repository.Repository
	events kafka.Enqueuer
	cb     circuit_breaker.CircuitBreaker
	cfg    config.Library
	now    func() time.Time
}

func NewService(repo repository.Repository, events kafka.Enqueuer, cfg config.Library, log *zap.Logger) *Service {
	if events == nil {
		events = kafka.NopEnqueuer{}
	}
	s := &Service{
		log:    log.Named("service"),
		repo:   repo,
		events: events,
		cfg:    cfg,
		now:    time.Now,
	}
	breaker := cfg.Events
	breaker.OnStateChange = s.eventsStateChanged
	s.cb = circuit_breaker.New(breaker)
	return s
}

func (s *Service) eventsStateChanged(from, to circuit_breaker.Status, c circuit_breaker.Counts) {
	switch to {
	case circuit_breaker.Open:
		s.log.Warn("loan events suspended",
			zap.Stringer("from", from), zap.Int("failures", c.Failures), zap.Int("calls", c.Calls))
	case circuit_breaker.Closed:
		s.log.Info("loan events resumed", zap.Int("dropped", c.Rejected))
	}
}

func (s *Service) publish(typ model.LoanEventType, rec model.BorrowRecord) {
	event := model.LoanEvent{
		Type:      typ,
		RecordID:  rec.ID,
		UserID:    rec.UserID,
		BookID:    rec.BookID,
		Timestamp: s.now().UTC(),
	}
	err := s.cb.Call(func() error {
		return s.events.Enqueue(kafka.LoanTopic, event)
	})
	switch {
	case err == nil:
	case errors.Is(err, circuit_breaker.ErrOpenCB):
		s.log.Debug("loan event dropped", zap.String("type", string(typ)), zap.Int("record", rec.ID))
	default:
		s.log.Warn("publish loan event", zap.String("type", string(typ)), zap.Int("record", rec.ID), zap.Error(err))
	}
}

func firstPage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
