package seeder

import (
	"fmt"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/sirupsen/logrus"

	"github.com/deechee777/lawlens/backend/internal/models"
)

// Options controls a seeding run
type Options struct {
	DryRun     bool
	SkipVerify bool
	Limit      int // 0 = all
	Delay      time.Duration
}

// Seeder loads the starter question catalog into the database, optionally
// verifying each source URL and capturing its page title.
type Seeder struct {
	questions models.QuestionRepository
	processor *TextProcessor
	logger    *logrus.Logger
	opts      Options

	seeded  int
	skipped int
	errors  []error
}

func New(questions models.QuestionRepository, logger *logrus.Logger, opts Options) *Seeder {
	return &Seeder{
		questions: questions,
		processor: NewTextProcessor(),
		logger:    logger,
		opts:      opts,
	}
}

// Run seeds the catalog. Verification failures downgrade to seeding without
// a source title rather than dropping the entry.
func (s *Seeder) Run() error {
	entries := StarterQuestions
	if s.opts.Limit > 0 && s.opts.Limit < len(entries) {
		entries = entries[:s.opts.Limit]
	}

	s.logger.WithField("count", len(entries)).Info("Seeding starter questions")

	for _, entry := range entries {
		if err := s.seedOne(entry); err != nil {
			s.errors = append(s.errors, err)
			s.logger.WithError(err).WithField("question", entry.QuestionText).Error("Failed to seed question")
		}

		if s.opts.Delay > 0 {
			time.Sleep(s.opts.Delay)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"seeded":  s.seeded,
		"skipped": s.skipped,
		"errors":  len(s.errors),
	}).Info("Seeding completed")

	if len(s.errors) > 0 {
		return fmt.Errorf("%d of %d entries failed", len(s.errors), len(entries))
	}
	return nil
}

func (s *Seeder) seedOne(entry StarterQuestion) error {
	if !s.opts.DryRun {
		exists, err := s.questions.ExistsByText(entry.QuestionText)
		if err != nil {
			return fmt.Errorf("existence check failed: %w", err)
		}
		if exists {
			s.skipped++
			s.logger.WithField("question", entry.QuestionText).Debug("Already seeded, skipping")
			return nil
		}
	}

	var sourceTitle *string
	if !s.opts.SkipVerify {
		title, err := s.verifySource(entry.SourceURL)
		if err != nil {
			s.logger.WithError(err).WithField("url", entry.SourceURL).Warn("Source verification failed")
		} else if title != "" {
			sourceTitle = &title
		}
	}

	if s.opts.DryRun {
		s.logger.WithFields(logrus.Fields{
			"question": entry.QuestionText,
			"source":   entry.SourceURL,
		}).Info("Dry run, would seed")
		s.seeded++
		return nil
	}

	answer := s.processor.CleanAnswer(entry.AnswerText)
	sourceURL := entry.SourceURL

	question := &models.Question{
		QuestionText: entry.QuestionText,
		AnswerText:   &answer,
		SourceURL:    &sourceURL,
		SourceTitle:  sourceTitle,
		IsPublic:     true,
		Status:       models.StatusAnswered,
	}

	if err := s.questions.Create(question); err != nil {
		return fmt.Errorf("create failed: %w", err)
	}

	s.seeded++
	s.logger.WithFields(logrus.Fields{
		"question_id": question.ID,
		"question":    entry.QuestionText,
	}).Info("Question seeded")
	return nil
}

// verifySource fetches the source URL and returns the cleaned page title.
func (s *Seeder) verifySource(url string) (string, error) {
	collector := colly.NewCollector(
		colly.UserAgent("LawLens-Seeder/1.0"),
		colly.MaxDepth(1),
	)
	collector.SetRequestTimeout(15 * time.Second)

	var title string
	var fetchErr error

	collector.OnHTML("title", func(e *colly.HTMLElement) {
		if title == "" {
			title = s.processor.CleanTitle(e.Text)
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		fetchErr = err
	})

	if err := collector.Visit(url); err != nil {
		return "", err
	}
	collector.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	if title == "" {
		return "", fmt.Errorf("no title found at %s", strings.TrimSpace(url))
	}
	return title, nil
}
