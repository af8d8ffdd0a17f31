package service

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsecheck/internal/model"
)

// fakeClassifier returns a fixed star rating and counts calls
type fakeClassifier struct {
	stars int32
	calls int32
}

func (f *fakeClassifier) Classify(ctx context.Context, text string) int {
	atomic.AddInt32(&f.calls, 1)
	return int(atomic.LoadInt32(&f.stars))
}

func numericItem(question string, score int) model.NumericResponseItem {
	return model.NumericResponseItem{QuestionText: question, Score: score}
}

func TestCalculateChurnRiskNoData(t *testing.T) {
	svc := NewChurnService(&fakeClassifier{stars: 3})

	risk := svc.CalculateChurnRisk(context.Background(), model.ScoringInput{EntityName: "Alice"}, model.EntityUser)

	assert.Equal(t, "Alice", risk.Entity)
	assert.Equal(t, model.EntityUser, risk.EntityType)
	assert.Equal(t, 40, risk.RiskScore)
	assert.Equal(t, model.RiskLow, risk.RiskLabel)
	assert.Equal(t, "Based on 0 factors.", risk.Details)
}

func TestCalculateChurnRiskAllTopScores(t *testing.T) {
	svc := NewChurnService(&fakeClassifier{stars: 3})

	input := model.ScoringInput{
		EntityName: "Bob",
		NumericResponses: []model.NumericResponseItem{
			numericItem("How was your workload this week?", 5),
			numericItem("Are you happy with the atmosphere?", 5),
			numericItem("How supported do you feel by your team?", 5),
		},
	}
	risk := svc.CalculateChurnRisk(context.Background(), input, model.EntityUser)

	// Perfect numeric blended with the 0.6 missing-text default
	assert.Equal(t, 20, risk.RiskScore)
	assert.Equal(t, model.RiskHealthy, risk.RiskLabel)
	assert.Equal(t, "Based on 3 factors.", risk.Details)
}

func TestCalculateChurnRiskRetentionWeighting(t *testing.T) {
	svc := NewChurnService(&fakeClassifier{stars: 3})
	ctx := context.Background()

	// A low retention answer plus one neutral text answer
	withRetention := model.ScoringInput{
		EntityName: "Carol",
		NumericResponses: []model.NumericResponseItem{
			numericItem("Do you see yourself working here in a year?", 1),
		},
		TextResponses: []string{"It was an ordinary week."},
	}
	risk := svc.CalculateChurnRisk(ctx, withRetention, model.EntityUser)
	assert.Equal(t, 68, risk.RiskScore)
	assert.Equal(t, model.RiskHigh, risk.RiskLabel)
	assert.Equal(t, "Based on 2 factors. Includes weighted retention indicators.", risk.Details)

	// The same answer on an ordinary question weighs far less
	withoutRetention := model.ScoringInput{
		EntityName: "Carol",
		NumericResponses: []model.NumericResponseItem{
			numericItem("How was your workload this week?", 1),
		},
		TextResponses: []string{"It was an ordinary week."},
	}
	risk = svc.CalculateChurnRisk(ctx, withoutRetention, model.EntityUser)
	assert.Equal(t, 60, risk.RiskScore)
	assert.Equal(t, model.RiskMedium, risk.RiskLabel)
	assert.Equal(t, "Based on 2 factors.", risk.Details)
}

func TestCalculateChurnRiskTextOnly(t *testing.T) {
	classifier := &fakeClassifier{stars: 5}
	svc := NewChurnService(classifier)

	input := model.ScoringInput{
		EntityName:    "Dave",
		TextResponses: []string{"Great week, loved the demo.", "Team lunch was fun."},
	}
	risk := svc.CalculateChurnRisk(context.Background(), input, model.EntityUser)

	// numeric default 0.6 blended 50/50 with perfect text sentiment
	assert.Equal(t, 20, risk.RiskScore)
	assert.Equal(t, model.RiskHealthy, risk.RiskLabel)
	assert.Equal(t, int32(2), atomic.LoadInt32(&classifier.calls))
}

func TestCalculateChurnRiskDepartmentMergeEquivalence(t *testing.T) {
	svc := NewChurnService(&fakeClassifier{stars: 2})
	ctx := context.Background()

	a := model.ScoringInput{
		EntityName: "Eve",
		NumericResponses: []model.NumericResponseItem{
			numericItem("Do you see yourself working here in a year?", 2),
		},
		TextResponses: []string{"Thinking about other options."},
	}
	b := model.ScoringInput{
		EntityName: "Frank",
		NumericResponses: []model.NumericResponseItem{
			numericItem("How was your workload this week?", 4),
		},
	}

	merged := mergeScoringInputs("Engineering", a, b)
	require.Len(t, merged.NumericResponses, 2)
	require.Len(t, merged.TextResponses, 1)

	direct := model.ScoringInput{
		EntityName:       "Engineering",
		NumericResponses: append(append([]model.NumericResponseItem{}, a.NumericResponses...), b.NumericResponses...),
		TextResponses:    []string{"Thinking about other options."},
	}

	got := svc.CalculateChurnRisk(ctx, merged, model.EntityDepartment)
	want := svc.CalculateChurnRisk(ctx, direct, model.EntityDepartment)
	assert.Equal(t, want.RiskScore, got.RiskScore)
	assert.Equal(t, want.RiskLabel, got.RiskLabel)
	assert.Equal(t, model.EntityDepartment, got.EntityType)
}

func TestRiskLabelBoundaries(t *testing.T) {
	cases := []struct {
		score int
		label string
	}{
		{0, model.RiskHealthy},
		{20, model.RiskHealthy},
		{21, model.RiskLow},
		{40, model.RiskLow},
		{41, model.RiskMedium},
		{60, model.RiskMedium},
		{61, model.RiskHigh},
		{80, model.RiskHigh},
		{81, model.RiskCritical},
		{100, model.RiskCritical},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.label, riskLabelFor(tc.score), "score %d", tc.score)
	}
}

func TestIsRetentionQuestion(t *testing.T) {
	cases := []struct {
		text string
		want bool
	}{
		{"Do you see yourself working here in a year?", true},
		{"Zie je jezelf hier over een jaar nog werken?", true},
		{"Ben je van plan ander werk te gaan zoeken?", false},
		{"Are you LOOKING FOR NEW JOB opportunities?", true},
		{"Wil je ander werk zoeken?", true},
		{"How was your workload this week?", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, isRetentionQuestion(tc.text), "text %q", tc.text)
	}
}
