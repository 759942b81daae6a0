package service

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"emotispell/internal/models"
	"emotispell/internal/validation"
)

// IngestService is the event ingestion gateway. It validates incoming
// emotion-sample and game-report events against the child identity that
// produced them, persists them, and then publishes a scoped envelope.
// Persistence must succeed or the call fails; broadcast is best-effort
// and never rolled back or retried.
type IngestService struct {
	accounts AccountStore
	emotions EmotionStore
	reports  ReportStore
	hub      Broadcaster

	// mu guards locks; each child gets its own mutex so concurrent
	// writes for one child apply in arrival order without stalling
	// ingestion for other children.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewIngestService creates a new ingestion gateway
func NewIngestService(accounts AccountStore, emotions EmotionStore, reports ReportStore, hub Broadcaster) *IngestService {
	return &IngestService{
		accounts: accounts,
		emotions: emotions,
		reports:  reports,
		hub:      hub,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *IngestService) childLock(childID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[childID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[childID] = lock
	}
	return lock
}

// resolveActiveChild loads the child account and enforces the identity
// invariant: events may only target an existing, active child.
func (s *IngestService) resolveActiveChild(childID string) (*models.Account, error) {
	account, err := s.accounts.GetAccountByID(childID)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}
	if account == nil || account.Role != models.RoleChild || !account.Active {
		return nil, fmt.Errorf("child %s: %w", childID, ErrNotFound)
	}
	return account, nil
}

type emotionEvent struct {
	ChildID   string    `json:"childId"`
	Label     string    `json:"label"`
	Question  string    `json:"question"`
	Timestamp time.Time `json:"timestamp"`
}

// RecordEmotion validates and appends one emotion sample, then publishes
// an emotion-recorded envelope scoped to the child's supervisor.
func (s *IngestService) RecordEmotion(childID, label, question string) (*models.EmotionSample, error) {
	if !models.IsKnownLabel(label) {
		return nil, fmt.Errorf("label %q: %w", label, ErrInvalidInput)
	}
	if err := validation.ValidateQuestion(question); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}

	child, err := s.resolveActiveChild(childID)
	if err != nil {
		return nil, err
	}

	sample := &models.EmotionSample{
		ChildID:    childID,
		Label:      label,
		Question:   question,
		RecordedAt: time.Now(),
	}

	// Publish stays under the child lock so dashboards observe one
	// child's events in ingestion order. Hub delivery never blocks.
	lock := s.childLock(childID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.emotions.AppendSample(sample); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}

	s.publish(models.EventEmotionRecorded, child.OwnerScope(), emotionEvent{
		ChildID:   childID,
		Label:     label,
		Question:  question,
		Timestamp: sample.RecordedAt,
	})

	return sample, nil
}

type gameEvent struct {
	ChildID     string    `json:"childId"`
	Score       int       `json:"score"`
	Emotions    []string  `json:"emotions"`
	Question    string    `json:"question"`
	IsCorrect   bool      `json:"isCorrect"`
	CompletedAt time.Time `json:"completedAt"`
}

// RecordGameReport validates and appends one game report, then publishes
// a game-recorded envelope scoped to the child's supervisor.
func (s *IngestService) RecordGameReport(childID string, score int, emotions []string, question string, isCorrect bool) (*models.GameReport, error) {
	if score < 0 {
		return nil, fmt.Errorf("score must be non-negative: %w", ErrInvalidInput)
	}
	if err := validation.ValidateQuestion(question); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	for _, label := range emotions {
		if !models.IsKnownLabel(label) {
			return nil, fmt.Errorf("label %q: %w", label, ErrInvalidInput)
		}
	}

	child, err := s.resolveActiveChild(childID)
	if err != nil {
		return nil, err
	}

	report := &models.GameReport{
		ChildID:     childID,
		Score:       score,
		Emotions:    emotions,
		Question:    question,
		IsCorrect:   isCorrect,
		CompletedAt: time.Now(),
	}

	lock := s.childLock(childID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.reports.AppendReport(report); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}

	s.publish(models.EventGameRecorded, child.OwnerScope(), gameEvent{
		ChildID:     childID,
		Score:       score,
		Emotions:    emotions,
		Question:    question,
		IsCorrect:   isCorrect,
		CompletedAt: report.CompletedAt,
	})

	return report, nil
}

// EmotionHistory returns all persisted emotion samples for a child in
// ingestion order. Disabled children keep their history.
func (s *IngestService) EmotionHistory(childID string) ([]models.EmotionSample, error) {
	if err := s.requireChildExists(childID); err != nil {
		return nil, err
	}
	samples, err := s.emotions.ListHistory(childID)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}
	return samples, nil
}

// GameHistory returns all persisted game reports for a child in
// ingestion order.
func (s *IngestService) GameHistory(childID string) ([]models.GameReport, error) {
	if err := s.requireChildExists(childID); err != nil {
		return nil, err
	}
	reports, err := s.reports.ListHistory(childID)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrTransient)
	}
	return reports, nil
}

func (s *IngestService) requireChildExists(childID string) error {
	account, err := s.accounts.GetAccountByID(childID)
	if err != nil {
		return fmt.Errorf("%v: %w", err, ErrTransient)
	}
	if account == nil || account.Role != models.RoleChild {
		return fmt.Errorf("child %s: %w", childID, ErrNotFound)
	}
	return nil
}

// publish wraps the payload in an envelope and hands it to the fan-out.
// Failures here are logged and dropped; the write already succeeded.
func (s *IngestService) publish(kind models.EventKind, scope string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ingest: failed to encode %s payload: %v", kind, err)
		return
	}
	s.hub.Publish(models.Envelope{Kind: kind, OwnerID: scope, Payload: raw})
}
