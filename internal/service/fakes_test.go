package service

import (
	"sync"

	"emotispell/internal/models"
)

// In-memory store fakes for service tests.

type fakeAccountStore struct {
	mu       sync.Mutex
	accounts map[string]*models.Account

	// Injectable failures, nil in the common case.
	createErr error
	getErr    error
}

func newFakeAccountStore(accounts ...*models.Account) *fakeAccountStore {
	store := &fakeAccountStore{accounts: make(map[string]*models.Account)}
	for _, account := range accounts {
		copied := *account
		store.accounts[account.ID] = &copied
	}
	return store
}

func (f *fakeAccountStore) CreateAccount(account *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *account
	f.accounts[account.ID] = &copied
	return nil
}

func (f *fakeAccountStore) GetAccountByID(id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	account, ok := f.accounts[id]
	if !ok {
		return nil, nil
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountStore) GetAccountByUsername(username string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, account := range f.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeAccountStore) ListAccounts(role models.Role, ownerID string) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Account
	for _, account := range f.accounts {
		if account.Role != role {
			continue
		}
		if ownerID != "" && account.OwnerID != ownerID {
			continue
		}
		out = append(out, *account)
	}
	return out, nil
}

func (f *fakeAccountStore) UpdateAccount(id, name, contact string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account, ok := f.accounts[id]; ok {
		account.Name = name
		account.Contact = contact
	}
	return nil
}

func (f *fakeAccountStore) SetAccountActive(id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if account, ok := f.accounts[id]; ok {
		account.Active = active
	}
	return nil
}

func (f *fakeAccountStore) DeleteAccount(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.accounts, id)
	return nil
}

type fakeEmotionStore struct {
	mu      sync.Mutex
	samples []models.EmotionSample
}

func (f *fakeEmotionStore) AppendSample(sample *models.EmotionSample) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	sample.ID = int64(len(f.samples) + 1)
	f.samples = append(f.samples, *sample)
	return nil
}

func (f *fakeEmotionStore) ListHistory(childID string) ([]models.EmotionSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.EmotionSample
	for _, sample := range f.samples {
		if sample.ChildID == childID {
			out = append(out, sample)
		}
	}
	return out, nil
}

type fakeReportStore struct {
	mu      sync.Mutex
	reports []models.GameReport
}

func (f *fakeReportStore) AppendReport(report *models.GameReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	report.ID = int64(len(f.reports) + 1)
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeReportStore) ListHistory(childID string) ([]models.GameReport, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.GameReport
	for _, report := range f.reports {
		if report.ChildID == childID {
			out = append(out, report)
		}
	}
	return out, nil
}

type fakeBroadcaster struct {
	mu        sync.Mutex
	envelopes []models.Envelope
}

func (f *fakeBroadcaster) Publish(envelope models.Envelope) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.envelopes = append(f.envelopes, envelope)
}

func (f *fakeBroadcaster) published() []models.Envelope {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Envelope, len(f.envelopes))
	copy(out, f.envelopes)
	return out
}
