package model

import "time"

// Survey is one pulse round, identified by ISO week and year
type Survey struct {
	ID         string    `json:"id" bson:"_id,omitempty"`
	WeekNumber int       `json:"weekNumber" bson:"weekNumber"`
	Year       int       `json:"year" bson:"year"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}

// PulseFrequency controls how often new questions are generated
type PulseFrequency string

const (
	FrequencyWeekly   PulseFrequency = "weekly"
	FrequencyBiweekly PulseFrequency = "biweekly"
	FrequencyMonthly  PulseFrequency = "monthly"
)

// PulseConfig holds the manager-tunable settings for question generation
// and insights
type PulseConfig struct {
	QuestionPrompt string         `json:"questionPrompt,omitempty" bson:"questionPrompt,omitempty"`
	InsightsPrompt string         `json:"insightsPrompt,omitempty" bson:"insightsPrompt,omitempty"`
	FocusAreas     []string       `json:"focusAreas,omitempty" bson:"focusAreas,omitempty"`
	Tone           string         `json:"tone,omitempty" bson:"tone,omitempty"`
	Language       string         `json:"language,omitempty" bson:"language,omitempty"` // "nl", "en", "fr"
	PulseFrequency PulseFrequency `json:"pulseFrequency,omitempty" bson:"pulseFrequency,omitempty"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// SurveyState is returned to an employee opening the weekly survey
type SurveyState struct {
	Questions       []*Question `json:"questions"`
	AlreadyAnswered bool        `json:"alreadyAnswered"`
	WeekNumber      int         `json:"weekNumber"`
	Year            int         `json:"year"`
}
