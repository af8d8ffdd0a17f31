package service

import (
	"context"
	"log"
	"math"
	"sort"
	"strconv"
	"strings"

	"pulsecheck/internal/cache"
	"pulsecheck/internal/model"
	"pulsecheck/internal/repository"
)

const (
	// historyWeeks is how many survey weeks feed the dashboard and forecast
	historyWeeks = 8

	// keywordSampleSize is how many recent open answers feed keyword
	// extraction
	keywordSampleSize = 50

	// topKeywords caps the keyword list on the dashboard
	topKeywords = 7
)

// stopwords excluded from keyword extraction (Dutch and English)
var stopwords = map[string]bool{
	"de": true, "het": true, "en": true, "van": true, "in": true, "een": true,
	"is": true, "dat": true, "op": true, "te": true, "voor": true, "met": true,
	"zijn": true, "er": true, "naar": true, "ook": true, "aan": true, "om": true,
	"als": true, "kan": true, "dit": true, "maar": true, "bij": true,
	"wordt": true, "door": true, "nog": true, "of": true, "wel": true,
	"niet": true, "meer": true, "al": true, "ze": true, "je": true, "ik": true,
	"we": true, "the": true, "and": true, "to": true, "a": true, "it": true,
	"that": true, "for": true, "on": true,
}

// AnalyticsService produces the manager dashboard summary and the weekly
// engagement forecast
type AnalyticsService struct {
	userRepo       repository.UserRepo
	surveyRepo     repository.SurveyRepo
	responseRepo   repository.ResponseRepo
	analyticsCache cache.AnalyticsCache
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(
	userRepo repository.UserRepo,
	surveyRepo repository.SurveyRepo,
	responseRepo repository.ResponseRepo,
	analyticsCache cache.AnalyticsCache,
) *AnalyticsService {
	return &AnalyticsService{
		userRepo:       userRepo,
		surveyRepo:     surveyRepo,
		responseRepo:   responseRepo,
		analyticsCache: analyticsCache,
	}
}

// Summary returns the dashboard summary, cached between submissions
func (s *AnalyticsService) Summary(ctx context.Context) (*model.AnalyticsSummary, error) {
	cached, err := s.analyticsCache.GetSummary(ctx)
	if err != nil {
		log.Printf("analytics cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}

	history, err := s.engagementHistory(ctx, historyWeeks)
	if err != nil {
		return nil, err
	}

	totalResponses, err := s.responseRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	respondents, err := s.responseRepo.CountDistinctRespondents(ctx)
	if err != nil {
		return nil, err
	}
	totalEmployees, err := s.userRepo.CountEmployees(ctx)
	if err != nil {
		return nil, err
	}
	participationRate := 0
	if totalEmployees > 0 {
		participationRate = int(math.Round(float64(respondents) / float64(totalEmployees) * 100))
	}

	currentScore := 0.0
	if len(history) > 0 {
		currentScore = history[len(history)-1].Score
	}

	texts, err := s.responseRepo.ListRecentOpenText(ctx, keywordSampleSize)
	if err != nil {
		return nil, err
	}

	summary := &model.AnalyticsSummary{
		History:           history,
		TotalResponses:    totalResponses,
		ParticipationRate: participationRate,
		CurrentScore:      currentScore,
		Keywords:          extractKeywords(texts, topKeywords),
	}

	if err := s.analyticsCache.SetSummary(ctx, summary); err != nil {
		log.Printf("analytics cache write failed: %v", err)
	}
	return summary, nil
}

// WeeklyPrediction forecasts next week's engagement score from recent
// history
func (s *AnalyticsService) WeeklyPrediction(ctx context.Context) (*model.WeeklyPrediction, error) {
	history, err := s.engagementHistory(ctx, historyWeeks)
	if err != nil {
		return nil, err
	}
	return computePrediction(history), nil
}

// engagementHistory returns per-week average scores, oldest first
func (s *AnalyticsService) engagementHistory(ctx context.Context, limit int) ([]model.WeekScore, error) {
	surveys, err := s.surveyRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}

	history := make([]model.WeekScore, 0, len(surveys))
	for _, survey := range surveys {
		responses, err := s.responseRepo.ListBySurvey(ctx, survey.ID)
		if err != nil {
			return nil, err
		}

		sum, count := 0, 0
		for _, r := range responses {
			if r.ValueNumeric != nil {
				sum += *r.ValueNumeric
				count++
			}
		}
		avg := 0.0
		if count > 0 {
			avg = math.Round(float64(sum)/float64(count)*10) / 10
		}

		history = append(history, model.WeekScore{
			Name:       "W" + strconv.Itoa(survey.WeekNumber),
			Score:      avg,
			WeekNumber: survey.WeekNumber,
			Year:       survey.Year,
		})
	}

	// ListRecent returns newest first; the dashboard wants oldest first
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history, nil
}

// computePrediction runs a weighted moving average with trend momentum over
// the most recent weeks. Needs at least two weeks of data.
func computePrediction(history []model.WeekScore) *model.WeeklyPrediction {
	if len(history) < 2 {
		return &model.WeeklyPrediction{
			HasPrediction: false,
			Message:       "Not enough data for prediction. Need at least 2 weeks of data.",
		}
	}

	// More recent weeks weighted higher
	weights := []float64{0.1, 0.15, 0.2, 0.25, 0.3}
	recent := history
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	weightedSum, weightSum := 0.0, 0.0
	for i, ws := range recent {
		weight := 0.2
		if i < len(weights) {
			weight = weights[i]
		}
		weightedSum += ws.Score * weight
		weightSum += weight
	}
	movingAverage := weightedSum / weightSum

	lastScore := recent[len(recent)-1].Score
	prevScore := recent[len(recent)-2].Score
	trend := lastScore - prevScore

	// Half of the last week-over-week delta carries forward as momentum
	predicted := movingAverage + trend*0.5
	predicted = math.Max(1, math.Min(5, predicted))
	predicted = math.Round(predicted*100) / 100

	mean := 0.0
	for _, ws := range recent {
		mean += ws.Score
	}
	mean /= float64(len(recent))
	variance := 0.0
	for _, ws := range recent {
		variance += (ws.Score - mean) * (ws.Score - mean)
	}
	variance /= float64(len(recent))
	stdDev := math.Sqrt(variance)

	confidence := "low"
	if stdDev < 0.3 && len(history) >= 4 {
		confidence = "high"
	} else if stdDev < 0.6 || len(history) >= 3 {
		confidence = "medium"
	}

	trendLabel := "stable"
	if trend > 0.05 {
		trendLabel = "up"
	} else if trend < -0.05 {
		trendLabel = "down"
	}

	return &model.WeeklyPrediction{
		HasPrediction:  true,
		PredictedScore: predicted,
		Confidence:     confidence,
		Trend:          trendLabel,
		BasedOnWeeks:   len(history),
		History:        history,
	}
}

// extractKeywords runs a simple word-frequency pass over recent open
// feedback, skipping stopwords and short words
func extractKeywords(texts []string, limit int) []model.Keyword {
	freq := make(map[string]int)
	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,!?;:\"'()")
			if len(word) <= 3 || stopwords[word] {
				continue
			}
			freq[word]++
		}
	}
	if len(freq) == 0 {
		return nil
	}

	words := make([]string, 0, len(freq))
	for word := range freq {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if freq[words[i]] != freq[words[j]] {
			return freq[words[i]] > freq[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > limit {
		words = words[:limit]
	}

	keywords := make([]model.Keyword, 0, len(words))
	for _, word := range words {
		keywords = append(keywords, model.Keyword{
			Word:      strings.ToUpper(word[:1]) + word[1:],
			Sentiment: "neutral",
		})
	}
	return keywords
}
