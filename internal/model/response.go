package model

import "time"

// Response is one submitted answer to a question within a survey week
type Response struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	UserID       string    `json:"userId" bson:"userId"`
	QuestionID   string    `json:"questionId" bson:"questionId"`
	SurveyID     string    `json:"surveyId" bson:"surveyId"`
	ValueNumeric *int      `json:"valueNumeric,omitempty" bson:"valueNumeric,omitempty"`
	ValueText    string    `json:"valueText,omitempty" bson:"valueText,omitempty"`
	SubmittedAt  time.Time `json:"submittedAt" bson:"submittedAt"`
}

// SubmittedAnswer is one answer in a survey submission request. Value is the
// raw form value; numeric strings become ValueNumeric, everything else
// ValueText.
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	Value      string `json:"value"`
}
