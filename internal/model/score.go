package model

// CriteriaHit is one explanatory line for a nonzero scoring contributor.
type CriteriaHit struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ScoreResult is the output of the scoring engine.
type ScoreResult struct {
	Score       float64       `json:"score"` // 0..100
	StrongMatch bool          `json:"strongMatch"`
	Why         []CriteriaHit `json:"why"`
	Notes       []string      `json:"notes"`
}
