package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ascendapp/ascend-api/internal/domain"
	"github.com/ascendapp/ascend-api/internal/platform/logger"
	"github.com/ascendapp/ascend-api/internal/store"
	"github.com/google/uuid"
)

// PostgresReviewItemStore implements the store.ReviewItemStore interface
// using a PostgreSQL database as the storage backend.
type PostgresReviewItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewItemStore creates a new PostgreSQL implementation of the
// ReviewItemStore interface. If logger is nil, a default logger is used.
func NewPostgresReviewItemStore(db store.DBTX, logger *slog.Logger) *PostgresReviewItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_item_store")),
	}
}

// Ensure PostgresReviewItemStore implements store.ReviewItemStore interface
var _ store.ReviewItemStore = (*PostgresReviewItemStore)(nil)

const reviewColumns = `id, user_id, skill_id, skill_domain, ease_factor, interval_days,
	repetition_count, mastery_level, next_review, last_reviewed_at, last_quality,
	created_at, updated_at`

// Ensure implements store.ReviewItemStore.Ensure. The insert is guarded by
// the unique (user_id, skill_id) constraint; the stored row is re-read and
// returned so concurrent first encounters of a skill all see the same state.
func (s *PostgresReviewItemStore) Ensure(
	ctx context.Context,
	item *domain.ReviewItem,
) (*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("review item validation failed during ensure",
			slog.String("error", err.Error()),
			slog.String("user_id", item.UserID.String()),
			slog.String("skill_id", item.SkillID))
		return nil, fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_items (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (user_id, skill_id) DO NOTHING
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.UserID,
		item.SkillID,
		item.SkillDomain,
		item.EaseFactor,
		item.IntervalDays,
		item.RepetitionCount,
		item.MasteryLevel,
		item.NextReview,
		nullTime(item.LastReviewedAt),
		item.LastQuality,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to ensure review item",
			slog.String("error", err.Error()),
			slog.String("user_id", item.UserID.String()),
			slog.String("skill_id", item.SkillID))
		return nil, MapError(err)
	}

	return s.Get(ctx, item.UserID, item.SkillID)
}

// Get implements store.ReviewItemStore.Get.
func (s *PostgresReviewItemStore) Get(
	ctx context.Context,
	userID uuid.UUID,
	skillID string,
) (*domain.ReviewItem, error) {
	query := `SELECT ` + reviewColumns + ` FROM review_items WHERE user_id = $1 AND skill_id = $2`
	return s.scanOne(ctx, query, userID, skillID)
}

// GetForUpdate implements store.ReviewItemStore.GetForUpdate.
func (s *PostgresReviewItemStore) GetForUpdate(
	ctx context.Context,
	userID uuid.UUID,
	skillID string,
) (*domain.ReviewItem, error) {
	query := `SELECT ` + reviewColumns + ` FROM review_items WHERE user_id = $1 AND skill_id = $2 FOR UPDATE`
	return s.scanOne(ctx, query, userID, skillID)
}

func (s *PostgresReviewItemStore) scanOne(
	ctx context.Context,
	query string,
	userID uuid.UUID,
	skillID string,
) (*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	item, err := scanReviewItem(s.db.QueryRowContext(ctx, query, userID, skillID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrReviewItemNotFound
		}
		log.Error("failed to get review item",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("skill_id", skillID))
		return nil, MapError(err)
	}

	return item, nil
}

// Update implements store.ReviewItemStore.Update.
func (s *PostgresReviewItemStore) Update(ctx context.Context, item *domain.ReviewItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("review item validation failed during update",
			slog.String("error", err.Error()),
			slog.String("user_id", item.UserID.String()),
			slog.String("skill_id", item.SkillID))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		UPDATE review_items
		SET skill_domain = $3, ease_factor = $4, interval_days = $5,
			repetition_count = $6, mastery_level = $7, next_review = $8,
			last_reviewed_at = $9, last_quality = $10, updated_at = $11
		WHERE user_id = $1 AND skill_id = $2
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		item.UserID,
		item.SkillID,
		item.SkillDomain,
		item.EaseFactor,
		item.IntervalDays,
		item.RepetitionCount,
		item.MasteryLevel,
		item.NextReview,
		nullTime(item.LastReviewedAt),
		item.LastQuality,
		item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to update review item",
			slog.String("error", err.Error()),
			slog.String("user_id", item.UserID.String()),
			slog.String("skill_id", item.SkillID))
		return MapError(err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return MapError(err)
	}
	if rows == 0 {
		return store.ErrReviewItemNotFound
	}

	return nil
}

// ListDue implements store.ReviewItemStore.ListDue.
func (s *PostgresReviewItemStore) ListDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT ` + reviewColumns + `
		FROM review_items
		WHERE user_id = $1 AND next_review <= $2
		ORDER BY next_review ASC
		LIMIT $3
	`
	rows, err := s.db.QueryContext(ctx, query, userID, now, limit)
	if err != nil {
		log.Error("failed to list due review items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectReviewItems(rows)
}

// CountDue implements store.ReviewItemStore.CountDue.
func (s *PostgresReviewItemStore) CountDue(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT COUNT(*) FROM review_items WHERE user_id = $1 AND next_review <= $2`
	var count int
	if err := s.db.QueryRowContext(ctx, query, userID, now).Scan(&count); err != nil {
		log.Error("failed to count due review items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return 0, MapError(err)
	}

	return count, nil
}

// NextReviewAfter implements store.ReviewItemStore.NextReviewAfter.
func (s *PostgresReviewItemStore) NextReviewAfter(
	ctx context.Context,
	userID uuid.UUID,
	now time.Time,
) (*time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT MIN(next_review)
		FROM review_items
		WHERE user_id = $1 AND next_review > $2
	`
	var next sql.NullTime
	if err := s.db.QueryRowContext(ctx, query, userID, now).Scan(&next); err != nil {
		log.Error("failed to find next review time",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	if !next.Valid {
		return nil, nil
	}
	return &next.Time, nil
}

// ListByUser implements store.ReviewItemStore.ListByUser.
func (s *PostgresReviewItemStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewColumns + ` FROM review_items WHERE user_id = $1 ORDER BY skill_id ASC`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to list review items",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return collectReviewItems(rows)
}

// WithTx implements store.ReviewItemStore.WithTx.
func (s *PostgresReviewItemStore) WithTx(tx *sql.Tx) store.ReviewItemStore {
	return &PostgresReviewItemStore{
		db:     tx,
		logger: s.logger,
	}
}

func scanReviewItem(row rowScanner) (*domain.ReviewItem, error) {
	var item domain.ReviewItem
	var lastReviewed sql.NullTime
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.SkillID,
		&item.SkillDomain,
		&item.EaseFactor,
		&item.IntervalDays,
		&item.RepetitionCount,
		&item.MasteryLevel,
		&item.NextReview,
		&lastReviewed,
		&item.LastQuality,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lastReviewed.Valid {
		item.LastReviewedAt = lastReviewed.Time
	}

	return &item, nil
}

func collectReviewItems(rows *sql.Rows) ([]*domain.ReviewItem, error) {
	var items []*domain.ReviewItem
	for rows.Next() {
		item, err := scanReviewItem(rows)
		if err != nil {
			return nil, MapError(err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return items, nil
}

// nullTime converts a possibly-zero time to its SQL NULL representation.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
