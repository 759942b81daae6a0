package models

import "time"

// GameReport records the outcome of one puzzle question for a child.
// Reports are append-only per child.
type GameReport struct {
	ID          int64     `json:"id"`
	ChildID     string    `json:"childId"`
	Score       int       `json:"score"`
	Emotions    []string  `json:"emotions"`
	Question    string    `json:"question"`
	IsCorrect   bool      `json:"isCorrect"`
	CompletedAt time.Time `json:"completedAt"`
}
