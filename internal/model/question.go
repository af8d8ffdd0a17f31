package model

import "time"

// QuestionType defines how a question is answered
type QuestionType string

const (
	// QuestionTypeScale is answered on a 1-5 scale
	QuestionTypeScale QuestionType = "SCALE_1_5"
	// QuestionTypeOpen is answered with free text
	QuestionTypeOpen QuestionType = "OPEN"
)

// Question is a pulse survey question
type Question struct {
	ID        string       `json:"id" bson:"_id,omitempty"`
	Text      string       `json:"text" bson:"text"`
	Type      QuestionType `json:"type" bson:"type"`
	IsActive  bool         `json:"isActive" bson:"isActive"`
	Order     int          `json:"order" bson:"order"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
}

// GeneratedQuestion is a question produced by the AI generator before it is
// persisted
type GeneratedQuestion struct {
	Text string       `json:"text"`
	Type QuestionType `json:"type"`
}
