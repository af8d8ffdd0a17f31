package model

// WeekScore is the average engagement score for one survey week
type WeekScore struct {
	Name       string  `json:"name"` // e.g. "W34"
	Score      float64 `json:"score"`
	WeekNumber int     `json:"weekNumber"`
	Year       int     `json:"year"`
}

// Keyword is a frequently used word in recent open feedback
type Keyword struct {
	Word      string `json:"word"`
	Sentiment string `json:"sentiment"` // "positive", "neutral", "negative"
}

// AnalyticsSummary is the manager dashboard summary
type AnalyticsSummary struct {
	History           []WeekScore `json:"history"`
	TotalResponses    int64       `json:"totalResponses"`
	ParticipationRate int         `json:"participationRate"` // percentage 0-100
	CurrentScore      float64     `json:"currentScore"`
	Keywords          []Keyword   `json:"keywords,omitempty"`
}

// WeeklyPrediction forecasts next week's engagement score from recent
// history
type WeeklyPrediction struct {
	HasPrediction  bool        `json:"hasPrediction"`
	PredictedScore float64     `json:"predictedScore,omitempty"` // 1-5
	Confidence     string      `json:"confidence,omitempty"`     // "high", "medium", "low"
	Trend          string      `json:"trend,omitempty"`          // "up", "down", "stable"
	BasedOnWeeks   int         `json:"basedOnWeeks,omitempty"`
	History        []WeekScore `json:"history,omitempty"`
	Message        string      `json:"message,omitempty"`
}
