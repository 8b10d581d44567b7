package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"appsuite-be/internal/entities"
)

const urlColumns = `id, user_id, original_url, short_code, click_count, created_at`

type urlRepository struct {
	db *sql.DB
}

// NewURLRepository creates a Postgres-backed URL repository
func NewURLRepository(db *sql.DB) URLRepository {
	return &urlRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanURL(row rowScanner) (*entities.URL, error) {
	var url entities.URL
	err := row.Scan(
		&url.ID,
		&url.UserID,
		&url.OriginalURL,
		&url.ShortCode,
		&url.ClickCount,
		&url.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

func (r *urlRepository) FindByOwnerAndURL(ctx context.Context, userID *string, originalURL string) (*entities.URL, error) {
	query := `
		SELECT ` + urlColumns + `
		FROM urls
		WHERE user_id IS NOT DISTINCT FROM $1 AND original_url = $2
	`

	url, err := scanURL(r.db.QueryRowContext(ctx, query, userID, originalURL))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find URL: %w", err)
	}
	return url, nil
}

// CreateIfAbsent relies on the unique indexes instead of a prior existence check.
func (r *urlRepository) CreateIfAbsent(ctx context.Context, url *entities.URL) (*entities.URL, error) {
	if url.ID == "" {
		url.ID = uuid.NewString()
	}

	query := `
		INSERT INTO urls (id, user_id, original_url, short_code)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING
		RETURNING ` + urlColumns

	created, err := scanURL(r.db.QueryRowContext(ctx, query, url.ID, url.UserID, url.OriginalURL, url.ShortCode))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrConflict
	}
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrConflict
		}
		// owner row vanished (account deleted while its token was still in use)
		if hasPQCode(err, foreignKeyViolation) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create URL: %w", err)
	}
	return created, nil
}

func (r *urlRepository) FindByShortCode(ctx context.Context, shortCode string) (*entities.URL, error) {
	query := `
		SELECT ` + urlColumns + `
		FROM urls
		WHERE short_code = $1
	`

	url, err := scanURL(r.db.QueryRowContext(ctx, query, shortCode))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find URL: %w", err)
	}
	return url, nil
}

func (r *urlRepository) FindOwnedByShortCode(ctx context.Context, shortCode string, userID *string) (*entities.URL, error) {
	query := `
		SELECT ` + urlColumns + `
		FROM urls
		WHERE short_code = $1 AND user_id IS NOT DISTINCT FROM $2
	`

	url, err := scanURL(r.db.QueryRowContext(ctx, query, shortCode, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return url, nil
}

// IncrementClickCount updates the counter in place and logs the click in one transaction.
func (r *urlRepository) IncrementClickCount(ctx context.Context, shortCode string) (*entities.URL, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE urls
		SET click_count = click_count + 1
		WHERE short_code = $1
		RETURNING ` + urlColumns

	url, err := scanURL(tx.QueryRowContext(ctx, query, shortCode))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to increment click count: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO url_clicks (url_id) VALUES ($1)`, url.ID); err != nil {
		return nil, fmt.Errorf("failed to log click: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit click: %w", err)
	}
	return url, nil
}

func (r *urlRepository) ListByOwner(ctx context.Context, userID *string) ([]*entities.URL, error) {
	query := `
		SELECT ` + urlColumns + `
		FROM urls
		WHERE user_id IS NOT DISTINCT FROM $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get URLs: %w", err)
	}
	defer rows.Close()

	urls := []*entities.URL{}
	for rows.Next() {
		url, err := scanURL(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan URL: %w", err)
		}
		urls = append(urls, url)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating URLs: %w", err)
	}
	return urls, nil
}

func (r *urlRepository) Delete(ctx context.Context, id string, userID *string) (*entities.URL, error) {
	query := `
		DELETE FROM urls
		WHERE id = $1 AND user_id IS NOT DISTINCT FROM $2
		RETURNING ` + urlColumns

	url, err := scanURL(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete URL: %w", err)
	}
	return url, nil
}

func (r *urlRepository) DeleteAllByOwner(ctx context.Context, userID *string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		DELETE FROM urls
		WHERE user_id IS NOT DISTINCT FROM $1
		RETURNING short_code
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to clear URLs: %w", err)
	}
	defer rows.Close()

	codes := []string{}
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan short code: %w", err)
		}
		codes = append(codes, code)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deleted URLs: %w", err)
	}
	return codes, nil
}

// GetClickAnalytics counts clicks since the given time, grouped into buckets of the given width.
// Buckets are aligned on the Unix epoch, so hour and day buckets start on UTC boundaries.
func (r *urlRepository) GetClickAnalytics(ctx context.Context, urlID string, since time.Time, bucket time.Duration) ([]entities.ClickBucket, error) {
	query := `
		SELECT
			to_timestamp(floor(extract(epoch FROM clicked_at)::double precision / $2::double precision) * $2::double precision) AS time_bucket,
			COUNT(*) AS click_count
		FROM url_clicks
		WHERE url_id = $1 AND clicked_at >= $3
		GROUP BY time_bucket
		ORDER BY time_bucket ASC
	`

	rows, err := r.db.QueryContext(ctx, query, urlID, bucket.Seconds(), since.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to get click analytics: %w", err)
	}
	defer rows.Close()

	analytics := []entities.ClickBucket{}
	for rows.Next() {
		var b entities.ClickBucket
		if err := rows.Scan(&b.Time, &b.Count); err != nil {
			return nil, fmt.Errorf("failed to scan analytics: %w", err)
		}
		b.Time = b.Time.UTC()
		analytics = append(analytics, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analytics: %w", err)
	}
	return analytics, nil
}
