package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecheck/internal/config"
	"pulsecheck/internal/model"
)

func disabledAIService() *AIService {
	return NewAIService(&config.AIConfig{
		BaseURL:   "https://openrouter.ai/api/v1",
		Model:     "llama-3.3-70b-versatile",
		TimeoutMS: 1000,
	})
}

func TestGenerateWeeklyQuestionsFallbackDutch(t *testing.T) {
	svc := disabledAIService()

	questions := svc.GenerateWeeklyQuestions(context.Background(), 35, 2026, &model.PulseConfig{}, nil, "nl")

	require.Len(t, questions, 3)
	assert.Equal(t, "Zie je jezelf hier over een jaar nog werken?", questions[1].Text)
	assert.Equal(t, model.QuestionTypeScale, questions[1].Type)
	assert.Equal(t, model.QuestionTypeScale, questions[0].Type)
	assert.Equal(t, model.QuestionTypeOpen, questions[2].Type)
}

func TestGenerateWeeklyQuestionsFallbackEnglish(t *testing.T) {
	svc := disabledAIService()

	questions := svc.GenerateWeeklyQuestions(context.Background(), 35, 2026, &model.PulseConfig{}, nil, "en")

	require.Len(t, questions, 3)
	assert.Equal(t, "Do you see yourself working here in a year?", questions[1].Text)
}

func TestGenerateWeeklyQuestionsRetentionIsDetectable(t *testing.T) {
	// The injected retention question must trip the churn scorer's keyword
	// detection in every locale
	for _, locale := range []string{"nl", "en", "fr"} {
		assert.True(t, isRetentionQuestion(retentionQuestionText(locale)), "locale %s", locale)
	}
}

func TestGenerateActionRecommendationsDisabled(t *testing.T) {
	svc := disabledAIService()

	actions := svc.GenerateActionRecommendations(context.Background(), 3.8, 75, nil, 35, 2026, &model.PulseConfig{}, "nl")
	assert.Nil(t, actions)
}

func TestGenerateCompanyInsightDisabled(t *testing.T) {
	svc := disabledAIService()

	_, err := svc.GenerateCompanyInsight(context.Background(), nil, 35, 2026, "nl")
	assert.Error(t, err)
}

func TestLanguageName(t *testing.T) {
	assert.Equal(t, "English", languageName("en"))
	assert.Equal(t, "French", languageName("fr"))
	assert.Equal(t, "Dutch", languageName("nl"))
	assert.Equal(t, "Dutch", languageName(""))
}
