package models

import "time"

// EmotionSample is one persisted affect observation for a child.
// Samples are append-only; history is never rewritten.
type EmotionSample struct {
	ID         int64     `json:"id"`
	ChildID    string    `json:"childId"`
	Label      string    `json:"label"`
	Question   string    `json:"question"`
	RecordedAt time.Time `json:"recordedAt"`
}

// KnownLabels is the fixed emotion set produced by the external classifier.
var KnownLabels = []string{
	"happy", "sad", "angry", "surprise", "fear", "disgust", "neutral",
}

// IsKnownLabel reports whether label belongs to the classifier's label set.
func IsKnownLabel(label string) bool {
	for _, l := range KnownLabels {
		if l == label {
			return true
		}
	}
	return false
}
