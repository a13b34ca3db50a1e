package search

import (
	"context"
	"strings"

	"github.com/deechee777/lawlens/backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Store is the slice of the question repository the engine needs. All three
// primitives filter to public, answered rows.
type Store interface {
	SearchFullText(ctx context.Context, tsQuery string, limit int) ([]models.Question, error)
	FindAnswered(ctx context.Context, terms []string, excludeIDs []string, limit int) ([]models.Question, error)
	SearchQuestionText(ctx context.Context, query string, limit int) ([]models.Question, error)
}

// strategy is one layer of the fallback chain. attempt returns up to limit
// results, never including the excluded ids.
type strategy interface {
	name() string
	attempt(ctx context.Context, query string, limit int, excludeIDs []string) ([]models.SearchResult, error)
}

// Engine runs the layered fallback search: full-text, then fuzzy substring
// matching, then keyword matching, deduplicated by id. It never returns an
// error; a broken store degrades to a single substring query and, at worst,
// an empty result set.
type Engine struct {
	store      Store
	logger     *logrus.Logger
	strategies []strategy
}

func NewEngine(store Store, logger *logrus.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
		strategies: []strategy{
			&fullTextStrategy{store: store},
			&fuzzyStrategy{store: store},
			&keywordStrategy{store: store},
		},
	}
}

// Search returns up to limit ranked results for the query.
func (e *Engine) Search(ctx context.Context, query string, limit int) []models.SearchResult {
	query = strings.TrimSpace(query)
	if query == "" || limit < 1 {
		return []models.SearchResult{}
	}

	results := make([]models.SearchResult, 0, limit)
	seen := make(map[string]bool)
	failures := 0

	for _, s := range e.strategies {
		if len(results) >= limit {
			break
		}

		remaining := limit - len(results)
		excludeIDs := make([]string, 0, len(results))
		for _, r := range results {
			excludeIDs = append(excludeIDs, r.ID)
		}

		found, err := s.attempt(ctx, query, remaining, excludeIDs)
		if err != nil {
			// Non-fatal: the strategy contributes zero results.
			failures++
			e.logger.WithError(err).WithField("strategy", s.name()).Error("Search strategy failed")
			continue
		}

		for _, r := range found {
			if seen[r.ID] {
				continue
			}
			seen[r.ID] = true
			results = append(results, r)
			if len(results) >= limit {
				break
			}
		}

		e.logger.WithFields(logrus.Fields{
			"strategy":  s.name(),
			"collected": len(results),
			"limit":     limit,
		}).Debug("Search strategy completed")
	}

	// Whole chain down: degrade to the simple substring query.
	if failures == len(e.strategies) {
		return e.simpleSearch(ctx, query, limit)
	}

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// FindBestMatch returns the single best result, or nil when nothing matches.
func (e *Engine) FindBestMatch(ctx context.Context, query string) *models.SearchResult {
	results := e.Search(ctx, query, 1)
	if len(results) == 0 {
		return nil
	}
	return &results[0]
}

// simpleSearch is the last-resort path: one case-insensitive substring match
// of the raw query against the question text. Results are unscored.
func (e *Engine) simpleSearch(ctx context.Context, query string, limit int) []models.SearchResult {
	questions, err := e.store.SearchQuestionText(ctx, query, limit)
	if err != nil {
		e.logger.WithError(err).Error("Simple search failed")
		return []models.SearchResult{}
	}

	results := make([]models.SearchResult, 0, len(questions))
	for _, q := range questions {
		results = append(results, models.SearchResult{Question: q})
	}
	return results
}

// tokenize splits a query on whitespace and drops tokens at or below the
// minimum length.
func tokenize(query string, minLen int) []string {
	var tokens []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) > minLen {
			tokens = append(tokens, word)
		}
	}
	return tokens
}
