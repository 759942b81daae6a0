// Package emotion reduces per-tick classifier labels into a single
// dominant label for one puzzle question.
package emotion

import "errors"

// ErrNoSamples is returned when aggregation is requested before any
// classifier tick has been buffered.
var ErrNoSamples = errors.New("no emotion samples to aggregate")

// Dominant returns the most frequent label in the window. Ties resolve
// to the label that occurred first, so repeated calls on the same input
// always agree regardless of map iteration order.
func Dominant(samples []string) (string, error) {
	if len(samples) == 0 {
		return "", ErrNoSamples
	}

	counts := make(map[string]int, len(samples))
	for _, label := range samples {
		counts[label]++
	}

	best := ""
	bestCount := 0
	for _, label := range samples {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}

	return best, nil
}
