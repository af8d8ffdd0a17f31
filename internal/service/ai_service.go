package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pulsecheck/internal/config"
	"pulsecheck/internal/model"
)

// AIService wraps the OpenAI-compatible chat completion API used for
// question generation, action recommendations, and company insights
type AIService struct {
	cfg    *config.AIConfig
	client *http.Client
}

// NewAIService creates a new AI service
func NewAIService(cfg *config.AIConfig) *AIService {
	return &AIService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
	}
}

// languageName maps a locale code to the language name used in prompts
func languageName(locale string) string {
	switch locale {
	case "en":
		return "English"
	case "fr":
		return "French"
	default:
		return "Dutch"
	}
}

// retentionQuestionText returns the retention question in the given locale.
// The wording is fixed so the churn model's keyword detection picks it up.
func retentionQuestionText(locale string) string {
	if locale == "nl" {
		return "Zie je jezelf hier over een jaar nog werken?"
	}
	return "Do you see yourself working here in a year?"
}

// GenerateWeeklyQuestions produces this week's pulse questions: two scale
// questions and one open question, with the retention question forced into
// the second slot. Falls back to a static trio when the AI call fails.
func (s *AIService) GenerateWeeklyQuestions(ctx context.Context, weekNumber, year int, cfg *model.PulseConfig, recentQuestions []string, locale string) []model.GeneratedQuestion {
	questions := s.generateQuestions(ctx, weekNumber, year, cfg, recentQuestions, locale)

	retention := model.GeneratedQuestion{
		Text: retentionQuestionText(locale),
		Type: model.QuestionTypeScale,
	}
	if len(questions) >= 2 {
		questions[1] = retention
	} else {
		questions = append(questions, retention)
	}
	return questions
}

func (s *AIService) generateQuestions(ctx context.Context, weekNumber, year int, cfg *model.PulseConfig, recentQuestions []string, locale string) []model.GeneratedQuestion {
	if !s.cfg.IsEnabled() {
		return fallbackQuestions(locale)
	}

	prompt := buildQuestionPrompt(weekNumber, year, cfg, recentQuestions, locale)
	response, err := s.callChat(ctx, prompt, true)
	if err != nil {
		return fallbackQuestions(locale)
	}

	var parsed struct {
		Questions []model.GeneratedQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil || len(parsed.Questions) == 0 {
		return fallbackQuestions(locale)
	}
	return parsed.Questions
}

// GenerateActionRecommendations produces concrete action items for the HR
// manager from the latest survey data. Returns an empty slice on failure.
func (s *AIService) GenerateActionRecommendations(ctx context.Context, engagementScore float64, participationRate int, openFeedback []string, weekNumber, year int, cfg *model.PulseConfig, locale string) []model.ActionRecommendation {
	if !s.cfg.IsEnabled() {
		return nil
	}

	prompt := buildActionsPrompt(engagementScore, participationRate, openFeedback, weekNumber, year, cfg, locale)
	response, err := s.callChat(ctx, prompt, true)
	if err != nil {
		return nil
	}

	var parsed struct {
		Actions []model.ActionRecommendation `json:"actions"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return nil
	}
	return parsed.Actions
}

// GenerateCompanyInsight produces a short executive summary of the given
// response lines. Unlike recommendations, failures propagate so the caller
// can report that AI is unavailable.
func (s *AIService) GenerateCompanyInsight(ctx context.Context, responseLines []string, weekNumber, year int, locale string) (string, error) {
	if !s.cfg.IsEnabled() {
		return "", fmt.Errorf("AI API key not configured")
	}

	prompt := fmt.Sprintf(`Analyze these survey responses for Week %d, %d.

Responses:
%s

Provide a concise, strategic executive summary (3-5 sentences) of the company sentiment. Identify key themes, strengths, and risks.
Language: %s.
Output: Plain text only.`,
		weekNumber, year, strings.Join(responseLines, "\n"), languageName(locale))

	return s.callChat(ctx, prompt, false)
}

// callChat makes a request to the chat completions API
func (s *AIService) callChat(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	reqBody := map[string]interface{}{
		"model": s.cfg.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.8,
	}
	if jsonMode {
		reqBody["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.cfg.ChatEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)
	if s.cfg.OpenRouter {
		req.Header.Set("HTTP-Referer", "https://pulsecheck.app")
		req.Header.Set("X-Title", "PulseCheck")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat API returned %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty response from chat API")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// Prompt builders
func buildQuestionPrompt(weekNumber, year int, cfg *model.PulseConfig, recentQuestions []string, locale string) string {
	extra := ""
	tone := "Professional yet approachable"
	focus := "General engagement, well-being, workload"
	if cfg != nil {
		if cfg.QuestionPrompt != "" {
			extra = "EXTRA INSTRUCTIONS FROM USER: " + cfg.QuestionPrompt
		}
		if cfg.Tone != "" {
			tone = cfg.Tone
		}
		if len(cfg.FocusAreas) > 0 {
			focus = strings.Join(cfg.FocusAreas, ", ")
		}
	}
	recent, _ := json.Marshal(recentQuestions)

	return fmt.Sprintf(`You are an expert HR consultant designed to generate engaging, unique, and effectively worded employee survey questions in %s.

%s

Current Context: Week %d, Year %d.

Goal: Generate 3 survey questions for this week.
- 2 Questions must be of type "SCALE_1_5" (Answered on a scale of 1 to 5).
- 1 Question must be of type "OPEN" (Free text answer).

Constraints:
1. Language: %s.
2. Uniqueness: DO NOT repeat any of the following recent questions: %s.
3. Tone: %s.
4. Focus Areas: %s.
5. Length: Keep questions concise (max 15-20 words).

Output Format:
Return ONLY a valid JSON object with a "questions" key containing an array of objects.
Example:
{
  "questions": [
    { "text": "...", "type": "SCALE_1_5" },
    { "text": "...", "type": "SCALE_1_5" },
    { "text": "...", "type": "OPEN" }
  ]
}`,
		languageName(locale), extra, weekNumber, year, languageName(locale), string(recent), tone, focus)
}

func buildActionsPrompt(engagementScore float64, participationRate int, openFeedback []string, weekNumber, year int, cfg *model.PulseConfig, locale string) string {
	extra := ""
	if cfg != nil && cfg.InsightsPrompt != "" {
		extra = "EXTRA INSTRUCTIONS FROM USER: " + cfg.InsightsPrompt
	}

	feedbackLines := make([]string, 0, len(openFeedback))
	for _, f := range openFeedback {
		feedbackLines = append(feedbackLines, fmt.Sprintf("%q", f))
	}

	return fmt.Sprintf(`You are a senior HR strategist. Analyze the following employee survey data for Week %d, %d.

%s

Metrics:
- Engagement Score: %.1f/5
- Participation Rate: %d%%

Open Feedback (Anonymized):
%s

Task:
Generate 4-6 concrete, actionable recommendations for the HR manager.
- Actions must be specific to the feedback provided.
- Prioritize "high" for urgent issues (low scores, alarming feedback).
- Language: %s.

Output Format:
JSON object with key "actions":
{
  "actions": [
    {
      "title": "Action Title",
      "description": "Detailed description of what to do and why.",
      "priority": "high" | "medium" | "low",
      "category": "Category Name (e.g. Well-being, Management)"
    }
  ]
}`,
		weekNumber, year, extra, engagementScore, participationRate, strings.Join(feedbackLines, "\n"), languageName(locale))
}

// fallbackQuestions is the static trio used when generation fails
func fallbackQuestions(locale string) []model.GeneratedQuestion {
	if locale == "nl" {
		return []model.GeneratedQuestion{
			{Text: "Hoe is je werkdruk deze week?", Type: model.QuestionTypeScale},
			{Text: "Ben je tevreden over de sfeer?", Type: model.QuestionTypeScale},
			{Text: "Wat kan er beter volgende week?", Type: model.QuestionTypeOpen},
		}
	}
	return []model.GeneratedQuestion{
		{Text: "How was your workload this week?", Type: model.QuestionTypeScale},
		{Text: "Are you happy with the atmosphere?", Type: model.QuestionTypeScale},
		{Text: "What can be improved next week?", Type: model.QuestionTypeOpen},
	}
}
