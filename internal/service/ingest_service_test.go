package service

import (
	"errors"
	"testing"

	"emotispell/internal/models"
)

func activeChild() *models.Account {
	return &models.Account{
		ID:      "100200",
		Role:    models.RoleChild,
		Name:    "Mia",
		OwnerID: "sup-1",
		Active:  true,
	}
}

func newIngestFixture(accounts ...*models.Account) (*IngestService, *fakeEmotionStore, *fakeReportStore, *fakeBroadcaster) {
	emotions := &fakeEmotionStore{}
	reports := &fakeReportStore{}
	broadcaster := &fakeBroadcaster{}
	svc := NewIngestService(newFakeAccountStore(accounts...), emotions, reports, broadcaster)
	return svc, emotions, reports, broadcaster
}

func TestRecordEmotionAppendsAndPublishes(t *testing.T) {
	svc, emotions, _, broadcaster := newIngestFixture(activeChild())

	sample, err := svc.RecordEmotion("100200", "happy", "dog")
	if err != nil {
		t.Fatalf("RecordEmotion() error = %v", err)
	}
	if sample.Label != "happy" || sample.Question != "dog" {
		t.Errorf("sample = %+v, want label happy question dog", sample)
	}

	history, _ := emotions.ListHistory("100200")
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if history[0].Label != "happy" {
		t.Errorf("stored label = %q, want %q", history[0].Label, "happy")
	}

	envelopes := broadcaster.published()
	if len(envelopes) != 1 {
		t.Fatalf("published %d envelopes, want 1", len(envelopes))
	}
	if envelopes[0].Kind != models.EventEmotionRecorded {
		t.Errorf("envelope kind = %q, want %q", envelopes[0].Kind, models.EventEmotionRecorded)
	}
	if envelopes[0].OwnerID != "sup-1" {
		t.Errorf("envelope owner = %q, want %q", envelopes[0].OwnerID, "sup-1")
	}
}

func TestRecordEmotionValidation(t *testing.T) {
	svc, emotions, _, broadcaster := newIngestFixture(activeChild())

	tests := []struct {
		name     string
		childID  string
		label    string
		question string
		wantErr  error
	}{
		{"unknown label", "100200", "bored", "dog", ErrInvalidInput},
		{"empty label", "100200", "", "dog", ErrInvalidInput},
		{"empty question", "100200", "happy", "  ", ErrInvalidInput},
		{"unknown child", "999999", "happy", "dog", ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordEmotion(tt.childID, tt.label, tt.question)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordEmotion() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if history, _ := emotions.ListHistory("100200"); len(history) != 0 {
		t.Errorf("history length = %d after rejected calls, want 0", len(history))
	}
	if envelopes := broadcaster.published(); len(envelopes) != 0 {
		t.Errorf("published %d envelopes after rejected calls, want 0", len(envelopes))
	}
}

func TestRecordEmotionRejectsInactiveChild(t *testing.T) {
	disabled := activeChild()
	disabled.Active = false
	svc, emotions, _, _ := newIngestFixture(disabled)

	_, err := svc.RecordEmotion("100200", "happy", "dog")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("RecordEmotion() error = %v, want ErrNotFound", err)
	}
	if history, _ := emotions.ListHistory("100200"); len(history) != 0 {
		t.Errorf("history length = %d, want 0", len(history))
	}
}

func TestRecordGameReportAppendsAndPublishes(t *testing.T) {
	svc, _, reports, broadcaster := newIngestFixture(activeChild())

	report, err := svc.RecordGameReport("100200", 3, []string{"happy", "happy", "sad"}, "cat", true)
	if err != nil {
		t.Fatalf("RecordGameReport() error = %v", err)
	}
	if report.Score != 3 || !report.IsCorrect {
		t.Errorf("report = %+v, want score 3 correct", report)
	}

	history, _ := reports.ListHistory("100200")
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
	if len(history[0].Emotions) != 3 {
		t.Errorf("stored emotions = %v, want 3 labels", history[0].Emotions)
	}

	envelopes := broadcaster.published()
	if len(envelopes) != 1 || envelopes[0].Kind != models.EventGameRecorded {
		t.Fatalf("published = %+v, want one game-recorded envelope", envelopes)
	}
}

func TestRecordGameReportValidation(t *testing.T) {
	svc, _, reports, _ := newIngestFixture(activeChild())

	tests := []struct {
		name     string
		score    int
		emotions []string
		question string
		wantErr  error
	}{
		{"negative score", -1, nil, "cat", ErrInvalidInput},
		{"unknown emotion label", 1, []string{"happy", "bored"}, "cat", ErrInvalidInput},
		{"empty question", 1, nil, "", ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RecordGameReport("100200", tt.score, tt.emotions, tt.question, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordGameReport() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if history, _ := reports.ListHistory("100200"); len(history) != 0 {
		t.Errorf("history length = %d after rejected calls, want 0", len(history))
	}
}

func TestRecordGameReportAcceptsEmptyEmotions(t *testing.T) {
	svc, _, reports, _ := newIngestFixture(activeChild())

	if _, err := svc.RecordGameReport("100200", 0, nil, "zebra", false); err != nil {
		t.Fatalf("RecordGameReport() error = %v", err)
	}
	history, _ := reports.ListHistory("100200")
	if len(history) != 1 {
		t.Fatalf("history length = %d, want 1", len(history))
	}
}

func TestHistoryOrderingPerChild(t *testing.T) {
	svc, _, _, _ := newIngestFixture(activeChild())

	labels := []string{"happy", "sad", "happy", "neutral"}
	for _, label := range labels {
		if _, err := svc.RecordEmotion("100200", label, "dog"); err != nil {
			t.Fatalf("RecordEmotion(%q) error = %v", label, err)
		}
	}

	history, err := svc.EmotionHistory("100200")
	if err != nil {
		t.Fatalf("EmotionHistory() error = %v", err)
	}
	if len(history) != len(labels) {
		t.Fatalf("history length = %d, want %d", len(history), len(labels))
	}
	for i, label := range labels {
		if history[i].Label != label {
			t.Errorf("history[%d].Label = %q, want %q", i, history[i].Label, label)
		}
	}
}

func TestHistoryUnknownChild(t *testing.T) {
	svc, _, _, _ := newIngestFixture(activeChild())

	if _, err := svc.EmotionHistory("999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("EmotionHistory() error = %v, want ErrNotFound", err)
	}
	if _, err := svc.GameHistory("999999"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GameHistory() error = %v, want ErrNotFound", err)
	}
}

func TestAccountReadFailureIsTransient(t *testing.T) {
	accounts := newFakeAccountStore(activeChild())
	accounts.getErr = errors.New("connection reset")
	svc := NewIngestService(accounts, &fakeEmotionStore{}, &fakeReportStore{}, &fakeBroadcaster{})

	if _, err := svc.RecordEmotion("100200", "happy", "dog"); !errors.Is(err, ErrTransient) {
		t.Errorf("RecordEmotion() error = %v, want ErrTransient", err)
	}
	if _, err := svc.RecordGameReport("100200", 1, nil, "dog", true); !errors.Is(err, ErrTransient) {
		t.Errorf("RecordGameReport() error = %v, want ErrTransient", err)
	}
	if _, err := svc.EmotionHistory("100200"); !errors.Is(err, ErrTransient) {
		t.Errorf("EmotionHistory() error = %v, want ErrTransient", err)
	}
	if _, err := svc.GameHistory("100200"); !errors.Is(err, ErrTransient) {
		t.Errorf("GameHistory() error = %v, want ErrTransient", err)
	}
}

func TestHistoryReadableForDisabledChild(t *testing.T) {
	svc, _, _, _ := newIngestFixture(activeChild())

	if _, err := svc.RecordEmotion("100200", "happy", "dog"); err != nil {
		t.Fatalf("RecordEmotion() error = %v", err)
	}

	// Disabling stops new events but keeps history readable.
	_ = svc.accounts.SetAccountActive("100200", false)

	history, err := svc.EmotionHistory("100200")
	if err != nil {
		t.Fatalf("EmotionHistory() error = %v", err)
	}
	if len(history) != 1 {
		t.Errorf("history length = %d, want 1", len(history))
	}
}
