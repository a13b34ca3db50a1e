package decision

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/sirupsen/logrus"
)

const analyzerPrompt = `You are a Bad Decision Risk Analyzer. The user will describe a plan, and you will output:
1) a single numerical risk score from 0 to 100
2) a short humorous explanation of why it's risky or not
3) never return text without a number, and never give a range

Rules for scoring:
- Consider financial risk, legal risk, social fallout, and practicality equally
- Rate each on a scale of 0 to 10, then sum, multiply by 2.5 to get a 0-100 score
- Low score (0-30): it's probably fine
- Medium score (31-70): some red flags
- High score (71-100): terrible idea

Decision to analyze: "%s"

Output format (JSON only):
{
  "risk_score": [number],
  "message": "[short funny summary under 280 chars]"
}`

var fallbackExplanations = []string{
	"Our AI is having a bad decision moment of its own and can't analyze yours right now. But statistically speaking, most decisions people ask about aren't great. Consider getting a second opinion from someone who loves you enough to be honest.",
	"The AI is temporarily unavailable, much like your common sense when you thought this was a good idea. Take this as a sign from the universe to maybe reconsider your life choices.",
	"Our decision-analyzing AI is currently making its own questionable choices and is unavailable. In the meantime, ask yourself: would your grandmother approve? If not, that's probably your answer.",
}

// Analyzer turns a described plan into a risk score and a short verdict. API
// failures degrade to a random score with a canned explanation so the endpoint
// never breaks.
type Analyzer struct {
	client *Client
	logger *logrus.Logger
}

func NewAnalyzer(client *Client, logger *logrus.Logger) *Analyzer {
	return &Analyzer{client: client, logger: logger}
}

func (a *Analyzer) Analyze(ctx context.Context, decisionText string) *Result {
	resp, err := a.client.ChatCompletionWithRetry(ctx, ChatRequest{
		Messages: []ChatMessage{
			{Role: "user", Content: fmt.Sprintf(analyzerPrompt, decisionText)},
		},
		MaxTokens:   300,
		Temperature: 0.8,
	})
	if err != nil {
		a.logger.WithError(err).Error("Decision analysis request failed")
		return a.fallback()
	}

	result, err := parseVerdict(resp)
	if err != nil {
		a.logger.WithError(err).Error("Decision analysis response unusable")
		return a.fallback()
	}

	return result
}

func parseVerdict(resp *ChatResponse) (*Result, error) {
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("empty completion")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	// Models sometimes wrap JSON in a markdown fence.
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var v verdict
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		return nil, fmt.Errorf("failed to parse verdict: %w", err)
	}
	if v.Message == "" {
		return nil, fmt.Errorf("verdict has no message")
	}

	score := int(math.Round(v.RiskScore))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return &Result{RiskScore: score, Explanation: v.Message}, nil
}

func (a *Analyzer) fallback() *Result {
	return &Result{
		RiskScore:   rand.Intn(101),
		Explanation: fallbackExplanations[rand.Intn(len(fallbackExplanations))],
		Fallback:    true,
	}
}
