package store

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/quizedit/internal/auth"
	"github.com/xonecas/quizedit/internal/quiz"
)

// Collection names.
const (
	Quizzes      = "quizzes"
	Sections     = "sections"
	Questions    = "questions"
	FeatureUsage = "feature_usage"
)

// QuizRecord is the stored form of an imported quiz.
type QuizRecord struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Sections  int    `json:"sections"`
	Questions int    `json:"questions"`
	Source    string `json:"source"`
}

// SectionRecord is the stored form of one quiz section.
type SectionRecord struct {
	QuizID   string `json:"quiz_id"`
	Position int    `json:"position"`
	Key      string `json:"key,omitempty"`
	Title    string `json:"title,omitempty"`
}

// QuestionRecord is the stored form of one question.
type QuestionRecord struct {
	QuizID    string   `json:"quiz_id"`
	SectionID string   `json:"section_id"`
	Position  int      `json:"position"`
	Question  string   `json:"question"`
	Options   []string `json:"options,omitempty"`
	Answer    *int     `json:"answer,omitempty"`
}

// UsageRecord is one feature-usage telemetry event.
type UsageRecord struct {
	Feature string `json:"feature"`
	User    string `json:"user"`
	At      int64  `json:"at"`
}

// ImportQuiz stores q with its sections and questions in one transaction
// and returns the new quiz id. source names the file it came from.
func (s *Store) ImportQuiz(u auth.User, q *quiz.Quiz, source string) (string, error) {
	if s == nil {
		return "", ErrNoStore
	}
	if !u.Role.CanImport() {
		return "", fmt.Errorf("import as %s (%s): %w", u.Name, u.Role, auth.ErrForbidden)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	quizID, err := create(tx, Quizzes, QuizRecord{
		Title:     q.Title,
		Author:    u.Name,
		Sections:  len(q.Sections),
		Questions: q.QuestionCount(),
		Source:    source,
	})
	if err != nil {
		return "", err
	}
	for i, sec := range q.Sections {
		secID, err := create(tx, Sections, SectionRecord{
			QuizID:   quizID,
			Position: i,
			Key:      string(sec.ID),
			Title:    sec.Title,
		})
		if err != nil {
			return "", err
		}
		for j, qu := range sec.Questions {
			if _, err := create(tx, Questions, QuestionRecord{
				QuizID:    quizID,
				SectionID: secID,
				Position:  j,
				Question:  qu.Question,
				Options:   qu.Options,
				Answer:    qu.Answer,
			}); err != nil {
				return "", err
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit import: %w", err)
	}

	log.Info().Str("quiz", quizID).Str("author", u.Name).
		Int("sections", len(q.Sections)).Int("questions", q.QuestionCount()).
		Msg("quiz imported")
	return quizID, nil
}

// RecordUsage stores a feature-usage event. No-op on nil receiver; failures
// are logged, never returned.
func (s *Store) RecordUsage(feature, user string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := create(s.db, FeatureUsage, UsageRecord{Feature: feature, User: user, At: time.Now().Unix()}); err != nil {
		log.Warn().Err(err).Str("feature", feature).Msg("failed to record feature usage")
	}
}
