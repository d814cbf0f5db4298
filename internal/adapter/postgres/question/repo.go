// Package question implements the read-only quiz question repository.
// Question content is produced by the external generation pipeline; the
// engine only reads it to build retake sessions.
package question

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/studymate/recall-backend/internal/adapter/postgres"
	"github.com/studymate/recall-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var questionColumns = []string{
	"id", "quiz_id", "prompt", "options", "correct_option_index", "hint", "explanation",
}

// Repo provides question reads backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new question repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ListByQuizID returns the questions of a quiz in their original order.
func (r *Repo) ListByQuizID(ctx context.Context, quizID uuid.UUID) ([]*domain.Question, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query := builder.Select(questionColumns...).
		From("questions").
		Where(sq.Eq{"quiz_id": quizID}).
		OrderBy("position ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list questions query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []*domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}
	return questions, nil
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var q domain.Question
	err := row.Scan(
		&q.ID, &q.QuizID, &q.Prompt, &q.Options,
		&q.CorrectOptionIndex, &q.Hint, &q.Explanation,
	)
	if err != nil {
		return nil, err
	}
	return &q, nil
}
