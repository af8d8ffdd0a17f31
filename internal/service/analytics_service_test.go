package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecheck/internal/model"
)

func weekScores(scores ...float64) []model.WeekScore {
	history := make([]model.WeekScore, len(scores))
	for i, s := range scores {
		history[i] = model.WeekScore{Name: "W1", Score: s, WeekNumber: i + 1, Year: 2026}
	}
	return history
}

func TestComputePredictionNeedsTwoWeeks(t *testing.T) {
	for _, history := range [][]model.WeekScore{nil, weekScores(4.2)} {
		pred := computePrediction(history)
		require.NotNil(t, pred)
		assert.False(t, pred.HasPrediction)
		assert.Equal(t, "Not enough data for prediction. Need at least 2 weeks of data.", pred.Message)
	}
}

func TestComputePredictionStableHistory(t *testing.T) {
	pred := computePrediction(weekScores(4, 4, 4, 4))

	require.True(t, pred.HasPrediction)
	assert.InDelta(t, 4.0, pred.PredictedScore, 1e-9)
	assert.Equal(t, "stable", pred.Trend)
	assert.Equal(t, "high", pred.Confidence)
	assert.Equal(t, 4, pred.BasedOnWeeks)
	assert.Len(t, pred.History, 4)
}

func TestComputePredictionUpwardTrend(t *testing.T) {
	pred := computePrediction(weekScores(3, 3.5, 4.5))

	require.True(t, pred.HasPrediction)
	// weighted average 3.83 plus half of the last +1.0 jump
	assert.InDelta(t, 4.33, pred.PredictedScore, 1e-9)
	assert.Equal(t, "up", pred.Trend)
	assert.Equal(t, "medium", pred.Confidence)
	assert.Equal(t, 3, pred.BasedOnWeeks)
}

func TestComputePredictionDownwardTrend(t *testing.T) {
	pred := computePrediction(weekScores(4.5, 4.4, 3.9))

	require.True(t, pred.HasPrediction)
	assert.Equal(t, "down", pred.Trend)
	assert.Less(t, pred.PredictedScore, 4.5)
}

func TestComputePredictionClampsToScale(t *testing.T) {
	pred := computePrediction(weekScores(4.8, 5))

	require.True(t, pred.HasPrediction)
	assert.InDelta(t, 5.0, pred.PredictedScore, 1e-9)
	assert.Equal(t, "up", pred.Trend)
}

func TestComputePredictionUsesLastFiveWeeks(t *testing.T) {
	// Old bad weeks fall outside the five-week window
	pred := computePrediction(weekScores(1, 1, 1, 4, 4, 4, 4, 4))

	require.True(t, pred.HasPrediction)
	assert.InDelta(t, 4.0, pred.PredictedScore, 1e-9)
	assert.Equal(t, 8, pred.BasedOnWeeks)
}

func TestExtractKeywords(t *testing.T) {
	texts := []string{
		"De werkdruk was deze week echt te hoog.",
		"Werkdruk blijft een probleem, net als vorige week!",
		"Communicatie over werkdruk tussen teams kan beter.",
	}

	keywords := extractKeywords(texts, 3)

	require.NotEmpty(t, keywords)
	assert.Equal(t, "Werkdruk", keywords[0].Word)
	assert.LessOrEqual(t, len(keywords), 3)
	for _, kw := range keywords {
		assert.Equal(t, "neutral", kw.Sentiment)
		assert.Greater(t, len(kw.Word), 3)
	}
}

func TestExtractKeywordsSkipsStopwordsAndShortWords(t *testing.T) {
	keywords := extractKeywords([]string{"de het een and the to a it is was"}, 5)
	assert.Empty(t, keywords)
}

func TestExtractKeywordsEmptyInput(t *testing.T) {
	assert.Nil(t, extractKeywords(nil, 7))
	assert.Nil(t, extractKeywords([]string{""}, 7))
}
