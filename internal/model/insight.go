package model

import "time"

// ActionRecommendation is one AI-generated action item for the HR manager
type ActionRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Priority    string `json:"priority"` // "high", "medium", "low"
	Category    string `json:"category"`
}

// CompanyInsight is the AI executive summary for one survey week
type CompanyInsight struct {
	Text        string    `json:"text"`
	WeekNumber  int       `json:"weekNumber"`
	Year        int       `json:"year"`
	GeneratedAt time.Time `json:"generatedAt"`
}
