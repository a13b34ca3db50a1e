package search

import (
	"context"
	"sort"
	"strings"

	"github.com/deechee777/lawlens/backend/internal/models"
)

// fullTextStrategy submits prefix-matched, OR-combined terms to the store's
// indexed text search. Row filtering and ranking happen server-side.
type fullTextStrategy struct {
	store Store
}

func (s *fullTextStrategy) name() string { return "fulltext" }

func (s *fullTextStrategy) attempt(ctx context.Context, query string, limit int, excludeIDs []string) ([]models.SearchResult, error) {
	tokens := tokenize(query, 2)
	if len(tokens) == 0 {
		return nil, nil
	}

	terms := make([]string, 0, len(tokens))
	for _, token := range tokens {
		terms = append(terms, token+":*")
	}
	tsQuery := strings.Join(terms, " | ")

	questions, err := s.store.SearchFullText(ctx, tsQuery, limit)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(questions))
	for _, q := range questions {
		results = append(results, models.SearchResult{Question: q})
	}
	return results, nil
}

// fuzzyStrategy fetches candidates where any token appears as a substring of
// the question or answer text, then ranks them by relevance score.
type fuzzyStrategy struct {
	store Store
}

func (s *fuzzyStrategy) name() string { return "fuzzy" }

func (s *fuzzyStrategy) attempt(ctx context.Context, query string, limit int, excludeIDs []string) ([]models.SearchResult, error) {
	return scoredSubstringAttempt(ctx, s.store, query, tokenize(query, 2), limit, excludeIDs)
}

// keywordStrategy is the last widen: same mechanism as fuzzy with a stricter
// minimum token length.
type keywordStrategy struct {
	store Store
}

func (s *keywordStrategy) name() string { return "keyword" }

func (s *keywordStrategy) attempt(ctx context.Context, query string, limit int, excludeIDs []string) ([]models.SearchResult, error) {
	return scoredSubstringAttempt(ctx, s.store, query, tokenize(query, 3), limit, excludeIDs)
}

func scoredSubstringAttempt(ctx context.Context, store Store, query string, tokens []string, limit int, excludeIDs []string) ([]models.SearchResult, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	// Overfetch so excluded or low-quality rows still leave enough to rank.
	candidates, err := store.FindAnswered(ctx, tokens, excludeIDs, limit*2)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(candidates))
	for _, q := range candidates {
		answer := ""
		if q.AnswerText != nil {
			answer = *q.AnswerText
		}
		results = append(results, models.SearchResult{
			Question:       q,
			RelevanceScore: Score(query, q.QuestionText, answer),
		})
	}

	// Stable: ties keep the store's newest-first order.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
