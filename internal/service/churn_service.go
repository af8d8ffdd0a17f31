package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"pulsecheck/internal/model"

	"golang.org/x/sync/errgroup"
)

// retentionKeyword is one phrase that marks a question as asking about the
// respondent's intent to stay employed. Matching is case-insensitive
// substring containment, per surveyed language.
type retentionKeyword struct {
	Lang   string
	Phrase string
}

// retentionKeywords covers the wordings the question generator produces for
// the retention question, in Dutch and English
var retentionKeywords = []retentionKeyword{
	{Lang: "en", Phrase: "working here in a year"},
	{Lang: "nl", Phrase: "jaar nog werken"},
	{Lang: "en", Phrase: "looking for new job"},
	{Lang: "nl", Phrase: "ander werk zoeken"},
}

const (
	// defaultGoodness is used when an entity has no data for a signal.
	// Slightly above neutral so that missing data alone never flags an
	// entity as at risk.
	defaultGoodness = 0.6

	// retentionWeight amplifies retention questions in the numeric average;
	// standardWeight applies to every other scale question
	retentionWeight = 3.0
	standardWeight  = 1.0

	// maxScale is the top of the 1-5 answer scale
	maxScale = 5.0

	// classifyConcurrency bounds parallel sentiment calls within one entity
	classifyConcurrency = 4
)

// isRetentionQuestion reports whether the question wording asks about intent
// to remain employed
func isRetentionQuestion(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range retentionKeywords {
		if strings.Contains(lower, kw.Phrase) {
			return true
		}
	}
	return false
}

// ChurnService computes churn risk scores from survey responses. It is
// stateless: concurrent calls for different entities are safe, and it never
// fails on valid input. The only I/O is the injected sentiment classifier,
// which absorbs its own failures.
type ChurnService struct {
	classifier SentimentClassifier
}

// NewChurnService creates a new churn service
func NewChurnService(classifier SentimentClassifier) *ChurnService {
	return &ChurnService{classifier: classifier}
}

// CalculateChurnRisk scores one entity. The same algorithm serves single
// employees and flattened departments; callers decide what goes into the
// input.
//
// Numeric answers form a weighted fraction of the maximum possible score,
// with retention questions weighted 3x. Free-text answers are classified to
// 1-5 stars and averaged. The two signals are blended 70/30 when an explicit
// retention answer exists (it is the strongest predictor), 50/50 otherwise,
// then inverted onto a 0-100 risk scale.
func (s *ChurnService) CalculateChurnRisk(ctx context.Context, input model.ScoringInput, entityType model.EntityType) model.ChurnRisk {
	totalWeightedScore := 0.0
	totalMaxScore := 0.0
	hasRetentionSignal := false

	for _, item := range input.NumericResponses {
		weight := standardWeight
		if isRetentionQuestion(item.QuestionText) {
			weight = retentionWeight
			hasRetentionSignal = true
		}
		totalWeightedScore += float64(item.Score) * weight
		totalMaxScore += maxScale * weight
	}

	numericGoodness := defaultGoodness
	if totalMaxScore > 0 {
		numericGoodness = totalWeightedScore / totalMaxScore
	}

	textGoodness := defaultGoodness
	if len(input.TextResponses) > 0 {
		textGoodness = s.textGoodness(ctx, input.TextResponses)
	}

	numericWeight := 0.5
	if hasRetentionSignal {
		numericWeight = 0.7
	}
	textWeight := 1 - numericWeight

	goodness := numericGoodness*numericWeight + textGoodness*textWeight

	riskScore := int(math.Round(math.Max(0, math.Min(100, (1-goodness)*100))))

	details := fmt.Sprintf("Based on %d factors.", len(input.NumericResponses)+len(input.TextResponses))
	if hasRetentionSignal {
		details += " Includes weighted retention indicators."
	}

	return model.ChurnRisk{
		Entity:     input.EntityName,
		EntityType: entityType,
		RiskScore:  riskScore,
		RiskLabel:  riskLabelFor(riskScore),
		Details:    details,
	}
}

// textGoodness classifies every free-text answer and normalizes the star sum
// to [0,1]. Calls are independent, so they run concurrently; the sum is
// commutative and completion order does not affect the result.
func (s *ChurnService) textGoodness(ctx context.Context, texts []string) float64 {
	stars := make([]int, len(texts))

	var g errgroup.Group
	g.SetLimit(classifyConcurrency)
	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			stars[i] = s.classifier.Classify(ctx, text)
			return nil
		})
	}
	// Classify never returns an error, so Wait cannot either
	_ = g.Wait()

	sum := 0
	for _, st := range stars {
		sum += st
	}
	return float64(sum) / (float64(len(texts)) * maxScale)
}

// riskLabelFor partitions the 0-100 risk scale into labels. Bounds are
// strict on both sides, so 40 is "Low" and 20 is "Healthy".
func riskLabelFor(riskScore int) string {
	switch {
	case riskScore > 80:
		return model.RiskCritical
	case riskScore > 60:
		return model.RiskHigh
	case riskScore > 40:
		return model.RiskMedium
	case riskScore > 20:
		return model.RiskLow
	default:
		return model.RiskHealthy
	}
}
