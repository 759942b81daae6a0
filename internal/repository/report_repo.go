package repository

import (
	"fmt"
	"strings"

	"emotispell/internal/database"
	"emotispell/internal/models"
)

// ReportRepository handles database operations for game reports
type ReportRepository struct {
	db *database.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *database.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// AppendReport appends one game report for a child
func (r *ReportRepository) AppendReport(report *models.GameReport) error {
	query := `
		INSERT INTO game_reports (child_id, score, emotions, question, is_correct, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		report.ChildID,
		report.Score,
		strings.Join(report.Emotions, ","),
		report.Question,
		report.IsCorrect,
		report.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append game report: %w", err)
	}
	report.ID = id
	return nil
}

// ListHistory retrieves all game reports for a child in ingestion order
func (r *ReportRepository) ListHistory(childID string) ([]models.GameReport, error) {
	query := `
		SELECT id, child_id, score, emotions, question, is_correct, completed_at
		FROM game_reports
		WHERE child_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.Query(query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game history: %w", err)
	}
	defer rows.Close()

	var reports []models.GameReport
	for rows.Next() {
		var report models.GameReport
		var emotions string
		if err := rows.Scan(
			&report.ID,
			&report.ChildID,
			&report.Score,
			&emotions,
			&report.Question,
			&report.IsCorrect,
			&report.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game report: %w", err)
		}
		if emotions != "" {
			report.Emotions = strings.Split(emotions, ",")
		}
		reports = append(reports, report)
	}

	return reports, rows.Err()
}
