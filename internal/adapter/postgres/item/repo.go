// Package item implements the review-item repository using PostgreSQL.
// Simple reads are built with squirrel; the locking read uses raw SQL.
package item

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/studymate/recall-backend/internal/adapter/postgres"
	"github.com/studymate/recall-backend/internal/domain"
)

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var itemColumns = []string{
	"id", "learner_id", "owner_document_id", "kind",
	"mastery_score", "review_interval_days", "last_reviewed_at", "next_review_date",
	"version", "created_at", "updated_at",
}

// getForUpdateSQL takes a row lock so the attempt read-modify-write is atomic
// per item. Concurrent submissions for the same item serialize here instead
// of silently losing one update.
const getForUpdateSQL = `
SELECT id, learner_id, owner_document_id, kind,
       mastery_score, review_interval_days, last_reviewed_at, next_review_date,
       version, created_at, updated_at
FROM items
WHERE id = $1 AND learner_id = $2
FOR UPDATE`

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new item repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByID returns an item by primary key filtered by learner_id.
func (r *Repo) GetByID(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query := builder.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"id": itemID, "learner_id": learnerID})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query: %w", err)
	}

	item, err := scanItem(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "item", itemID)
	}
	return item, nil
}

// GetByIDForUpdate returns an item and locks its row until the surrounding
// transaction ends. Must be called inside RunInTx.
func (r *Repo) GetByIDForUpdate(ctx context.Context, learnerID, itemID uuid.UUID) (*domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	item, err := scanItem(querier.QueryRow(ctx, getForUpdateSQL, itemID, learnerID))
	if err != nil {
		return nil, postgres.MapError(err, "item", itemID)
	}
	return item, nil
}

// ListForLearner returns all items for a learner with current schedule state.
func (r *Repo) ListForLearner(ctx context.Context, learnerID uuid.UUID) ([]*domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query := builder.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"learner_id": learnerID}).
		OrderBy("created_at ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list items query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// ListScheduledBetween returns items whose next_review_date falls within
// [from, to). Never-reviewed items carry no next_review_date and are excluded.
func (r *Repo) ListScheduledBetween(ctx context.Context, learnerID uuid.UUID, from, to time.Time) ([]*domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query := builder.Select(itemColumns...).
		From("items").
		Where(sq.Eq{"learner_id": learnerID}).
		Where(sq.NotEq{"next_review_date": nil}).
		Where(sq.GtOrEq{"next_review_date": from}).
		Where(sq.Lt{"next_review_date": to}).
		OrderBy("next_review_date ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list scheduled query: %w", err)
	}

	rows, err := querier.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list scheduled items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// UpdateSchedule writes back the schedule fields after a scored attempt.
// The version predicate is an optimistic-concurrency check on top of the row
// lock: a zero-row update means the read was stale and maps to ErrConflict.
func (r *Repo) UpdateSchedule(ctx context.Context, learnerID, itemID uuid.UUID, version int, params domain.ScheduleUpdateParams) (*domain.Item, error) {
	querier := postgres.QuerierFromCtx(ctx, r.db)

	query := builder.Update("items").
		Set("mastery_score", params.MasteryScore).
		Set("review_interval_days", params.ReviewIntervalDays).
		Set("last_reviewed_at", params.LastReviewedAt).
		Set("next_review_date", params.NextReviewDate).
		Set("version", version+1).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": itemID, "learner_id": learnerID, "version": version}).
		Suffix("RETURNING " + columnList())

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update schedule query: %w", err)
	}

	item, err := scanItem(querier.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("item %s: stale version %d: %w", itemID, version, domain.ErrConflict)
		}
		return nil, postgres.MapError(err, "item", itemID)
	}
	return item, nil
}

func columnList() string {
	s := itemColumns[0]
	for _, c := range itemColumns[1:] {
		s += ", " + c
	}
	return s
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var it domain.Item
	var kind string
	err := row.Scan(
		&it.ID, &it.LearnerID, &it.OwnerDocumentID, &kind,
		&it.MasteryScore, &it.ReviewIntervalDays, &it.LastReviewedAt, &it.NextReviewDate,
		&it.Version, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	it.Kind = domain.ItemKind(kind)
	return &it, nil
}

func scanItems(rows pgx.Rows) ([]*domain.Item, error) {
	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
