package service

import "emotispell/internal/models"

// AccountStore is the keyed-store surface the services need for
// accounts. Implemented by repository.AccountRepository.
type AccountStore interface {
	CreateAccount(account *models.Account) error
	GetAccountByID(id string) (*models.Account, error)
	GetAccountByUsername(username string) (*models.Account, error)
	ListAccounts(role models.Role, ownerID string) ([]models.Account, error)
	UpdateAccount(id, name, contact string) error
	SetAccountActive(id string, active bool) error
	DeleteAccount(id string) error
}

// EmotionStore persists append-only emotion samples.
// Implemented by repository.EmotionRepository.
type EmotionStore interface {
	AppendSample(sample *models.EmotionSample) error
	ListHistory(childID string) ([]models.EmotionSample, error)
}

// ReportStore persists append-only game reports.
// Implemented by repository.ReportRepository.
type ReportStore interface {
	AppendReport(report *models.GameReport) error
	ListHistory(childID string) ([]models.GameReport, error)
}

// Broadcaster publishes envelopes to entitled dashboard connections.
// Implemented by hub.Hub.
type Broadcaster interface {
	Publish(envelope models.Envelope)
}
