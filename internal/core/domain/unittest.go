package domain

import "time"

// Difficulty classifies unit tests and result aggregates.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyAll    Difficulty = "all"
)

// Valid reports whether d is one of the known difficulty buckets.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyAll:
		return true
	}
	return false
}

// UnitTest is a single entry in the benchmark test bank.
type UnitTest struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Difficulty Difficulty `json:"difficulty"`
	Prompt     string     `json:"prompt"`
	Tests      string     `json:"tests"`
}

// Result is a benchmark score for one model: the percentage of the test bank
// (per difficulty bucket) the model passed.
type Result struct {
	ID         int64      `json:"id"`
	ModelID    int64      `json:"llm"`
	Score      float64    `json:"result"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  time.Time  `json:"created_at,omitempty"`
}
