package repository

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"

	"appsuite-be/internal/entities"
)

var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("record already exists")
)

// URLRepository persists short-code mappings. A nil userID addresses the anonymous owner.
type URLRepository interface {
	// FindByOwnerAndURL returns the owner's mapping for an already normalized URL.
	FindByOwnerAndURL(ctx context.Context, userID *string, originalURL string) (*entities.URL, error)
	// CreateIfAbsent inserts the mapping unless its short code or (owner, url) pair is taken,
	// in which case it returns ErrConflict and writes nothing.
	CreateIfAbsent(ctx context.Context, url *entities.URL) (*entities.URL, error)
	FindByShortCode(ctx context.Context, shortCode string) (*entities.URL, error)
	FindOwnedByShortCode(ctx context.Context, shortCode string, userID *string) (*entities.URL, error)
	// IncrementClickCount bumps the counter in place, records the click and returns the updated row.
	IncrementClickCount(ctx context.Context, shortCode string) (*entities.URL, error)
	ListByOwner(ctx context.Context, userID *string) ([]*entities.URL, error)
	// Delete removes one of the owner's mappings and returns it.
	Delete(ctx context.Context, id string, userID *string) (*entities.URL, error)
	// DeleteAllByOwner removes every mapping of the owner and returns their short codes.
	DeleteAllByOwner(ctx context.Context, userID *string) ([]string, error)
	GetClickAnalytics(ctx context.Context, urlID string, since time.Time, bucket time.Duration) ([]entities.ClickBucket, error)
}

type UserRepository interface {
	// Create returns ErrConflict when the username is taken.
	Create(ctx context.Context, username, passwordHash string) (*entities.User, error)
	FindByUsername(ctx context.Context, username string) (*entities.User, error)
	FindByID(ctx context.Context, id string) (*entities.User, error)
	// Delete removes the user together with all of its mappings.
	Delete(ctx context.Context, id string) error
}

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func hasPQCode(err error, code pq.ErrorCode) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == code
}

func isUniqueViolation(err error) bool {
	return hasPQCode(err, uniqueViolation)
}
