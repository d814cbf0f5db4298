// Package attempt implements the attempt repository using PostgreSQL.
// Attempts are append-only; there are no update or delete operations.
package attempt

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

var attemptColumns = []string{
	"id", "item_id", "learner_id", "correct", "selected_option_index", "attempted_at", "seq",
}

const countByItemIDSQL = `SELECT count(*) FROM attempts WHERE item_id = $1`

// getByItemIDsSQL batches attempt loads for session building (one query for
// the whole candidate pool instead of one per item).
const getByItemIDsSQL = `
SELECT id, item_id, learner_id, correct, selected_option_index, attempted_at, seq
FROM attempts
WHERE item_id = ANY($1::uuid[])
ORDER BY item_id, attempted_at ASC, seq ASC`

// Repo provides attempt persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new attempt repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a new attempt record. The seq column is assigned by the
// database and disambiguates equal timestamps (later-inserted wins).
func (r *Repo) Create(ctx context.Context, a *domain.Attempt) (*domain.Attempt, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query := builder.Insert("attempts").
		Columns("id", "item_id", "learner_id", "correct", "selected_option_index", "attempted_at").
		Values(a.ID, a.ItemID, a.LearnerID, a.Correct, a.SelectedOptionIndex, a.AttemptedAt).
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert attempt query: %w", err)
	}

	created, err := scanAttempt(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "attempt", a.ID)
	}
	return created, nil
}

// ListByItemID returns attempts for one item ordered oldest-first, with
// limit/offset pagination. Returns attempts, total count, and error.
// limit=0 means no limit.
func (r *Repo) ListByItemID(ctx context.Context, itemID uuid.UUID, limit, offset int) ([]*domain.Attempt, int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	var total int
	if err := querier.QueryRow(ctx, countByItemIDSQL, itemID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count attempts by item_id: %w", err)
	}

	query := builder.Select(attemptColumns...).
		From("attempts").
		Where(sq.Eq{"item_id": itemID}).
		OrderBy("attempted_at ASC", "seq ASC").
		Offset(uint64(offset))
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list attempts query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts, err := scanAttempts(rows)
	if err != nil {
		return nil, 0, err
	}
	return attempts, total, nil
}

// ListByItemIDs returns all attempts for the given items, grouped by item ID.
func (r *Repo) ListByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*domain.Attempt, error) {
	if len(itemIDs) == 0 {
		return map[uuid.UUID][]*domain.Attempt{}, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.db)

	rows, err := querier.Query(ctx, getByItemIDsSQL, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("list attempts by item_ids: %w", err)
	}
	defer rows.Close()

	attempts, err := scanAttempts(rows)
	if err != nil {
		return nil, err
	}

	grouped := make(map[uuid.UUID][]*domain.Attempt, len(itemIDs))
	for _, a := range attempts {
		grouped[a.ItemID] = append(grouped[a.ItemID], a)
	}
	return grouped, nil
}

func columnList() string {
	s := attemptColumns[0]
	for _, c := range attemptColumns[1:] {
		s += ", " + c
	}
	return s
}

func scanAttempt(row pgx.Row) (*domain.Attempt, error) {
	var a domain.Attempt
	err := row.Scan(
		&a.ID, &a.ItemID, &a.LearnerID, &a.Correct,
		&a.SelectedOptionIndex, &a.AttemptedAt, &a.Seq,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func scanAttempts(rows pgx.Rows) ([]*domain.Attempt, error) {
	var attempts []*domain.Attempt
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return attempts, nil
}
