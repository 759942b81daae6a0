package repository

import (
	"fmt"

	"emotispell/internal/database"
	"emotispell/internal/models"
)

// EmotionRepository handles database operations for emotion samples
type EmotionRepository struct {
	db *database.DB
}

// NewEmotionRepository creates a new emotion repository
func NewEmotionRepository(db *database.DB) *EmotionRepository {
	return &EmotionRepository{db: db}
}

// AppendSample appends one emotion sample for a child
func (r *EmotionRepository) AppendSample(sample *models.EmotionSample) error {
	query := `
		INSERT INTO emotion_samples (child_id, label, question, recorded_at)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, sample.ChildID, sample.Label, sample.Question, sample.RecordedAt)
	if err != nil {
		return fmt.Errorf("failed to append emotion sample: %w", err)
	}
	sample.ID = id
	return nil
}

// ListHistory retrieves all emotion samples for a child in ingestion order
func (r *EmotionRepository) ListHistory(childID string) ([]models.EmotionSample, error) {
	query := `
		SELECT id, child_id, label, question, recorded_at
		FROM emotion_samples
		WHERE child_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query emotion history: %w", err)
	}
	defer rows.Close()

	var samples []models.EmotionSample
	for rows.Next() {
		var sample models.EmotionSample
		if err := rows.Scan(
			&sample.ID,
			&sample.ChildID,
			&sample.Label,
			&sample.Question,
			&sample.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan emotion sample: %w", err)
		}
		samples = append(samples, sample)
	}

	return samples, rows.Err()
}
