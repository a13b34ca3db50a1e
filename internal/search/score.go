package search

import "strings"

// Score computes the relevance of a question/answer pair for a query.
//
// Weights: +100 for the full query as a substring of the question, +50 for
// the answer, +10/+5 per query token longer than two characters matching the
// question/answer, and +5 when the question is shorter than 100 characters.
// Phrase and token bonuses stack.
func Score(query, questionText, answerText string) int {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	questionLower := strings.ToLower(questionText)
	answerLower := strings.ToLower(answerText)

	score := 0

	if strings.Contains(questionLower, queryLower) {
		score += 100
	}
	if strings.Contains(answerLower, queryLower) {
		score += 50
	}

	for _, word := range strings.Fields(queryLower) {
		if len(word) <= 2 {
			continue
		}
		if strings.Contains(questionLower, word) {
			score += 10
		}
		if strings.Contains(answerLower, word) {
			score += 5
		}
	}

	// Shorter questions are likely more specific.
	if len(questionText) < 100 {
		score += 5
	}

	return score
}
