package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pulsecheck/internal/config"
)

// SentimentClassifier maps a piece of free text to a 1-5 star rating.
// Implementations never fail: any classification problem degrades to the
// neutral rating 3.
type SentimentClassifier interface {
	Classify(ctx context.Context, text string) int
}

// SentimentService calls an external star-rating sentiment model over HTTP.
// The remote model scores text on a 1-5 scale ("1 star" = very negative,
// "5 stars" = very positive). Errors are absorbed here, not retried: a
// degraded neutral rating is preferable to failing a whole scoring batch.
type SentimentService struct {
	cfg    *config.SentimentConfig
	client *http.Client
}

// NewSentimentService creates a new sentiment service
func NewSentimentService(cfg *config.SentimentConfig) *SentimentService {
	return &SentimentService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// Classify returns the star rating for a piece of text. Empty or
// whitespace-only text is neutral (3) without a remote call. Any failure of
// the remote call is logged and also yields 3.
func (s *SentimentService) Classify(ctx context.Context, text string) int {
	if strings.TrimSpace(text) == "" {
		return 3
	}

	stars, err := s.classify(ctx, text)
	if err != nil {
		log.Printf("sentiment: classification failed, falling back to neutral: %v", err)
		return 3
	}
	return stars
}

// sentimentLabel is one label/score pair from the classification model, e.g.
// {"label": "4 stars", "score": 0.62}
type sentimentLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

func (s *SentimentService) classify(ctx context.Context, text string) (int, error) {
	reqBody, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.URL, bytes.NewBuffer(reqBody))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	// Key is optional; without it the service applies anonymous rate limits,
	// which surface as non-2xx responses and fall back to neutral.
	if s.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("sentiment API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return parseStarRating(body)
}

// parseStarRating extracts the star count from the model response. The model
// returns a ranked list of label/score pairs, sometimes nested one level:
// [[{"label":"5 stars","score":0.8}, ...]] or [{"label":"5 stars", ...}].
// The highest-ranked label comes first. Any other shape is a parse failure.
func parseStarRating(body []byte) (int, error) {
	var nested [][]sentimentLabel
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) == 0 || len(nested[0]) == 0 {
			return 0, fmt.Errorf("sentiment API returned empty result")
		}
		return starsFromLabel(nested[0][0].Label)
	}

	var flat []sentimentLabel
	if err := json.Unmarshal(body, &flat); err == nil {
		if len(flat) == 0 {
			return 0, fmt.Errorf("sentiment API returned empty result")
		}
		return starsFromLabel(flat[0].Label)
	}

	return 0, fmt.Errorf("unexpected sentiment API response shape: %s", truncate(string(body), 200))
}

// starsFromLabel parses the leading integer of a label like "3 stars"
func starsFromLabel(label string) (int, error) {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty sentiment label")
	}
	stars, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("sentiment label %q has no leading star count", label)
	}
	if stars < 1 || stars > 5 {
		return 0, fmt.Errorf("sentiment label %q out of 1-5 range", label)
	}
	return stars, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
