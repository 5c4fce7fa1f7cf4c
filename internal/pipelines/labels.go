package pipelines

import (
	"fmt"
	"sort"

	"github.com/spacesedan/textanalytics/internal/models"
)

// UniqueLabels drops repeated candidates, keeping first occurrences in order.
// Model runtimes key their scores by label, so each label is scored once.
func UniqueLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	unique := make([]string, 0, len(labels))
	for _, label := range labels {
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		unique = append(unique, label)
	}
	return unique
}

// ScoresFor returns one score per entry of labels, repeats included, ranked
// highest first. Every label must appear in scored; extra entries are ignored.
func ScoresFor(labels []string, scored []models.ZeroShotScore) ([]models.ZeroShotScore, error) {
	byLabel := make(map[string]float64, len(scored))
	for _, s := range scored {
		byLabel[s.Label] = s.Score
	}

	scores := make([]models.ZeroShotScore, 0, len(labels))
	for _, label := range labels {
		score, ok := byLabel[label]
		if !ok {
			return nil, fmt.Errorf("%w: no score for label %q", models.ErrInvalidResult, label)
		}
		scores = append(scores, models.ZeroShotScore{Label: label, Score: score})
	}

	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	return scores, nil
}
