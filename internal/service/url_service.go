package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appsuite-be/internal/cache"
	"appsuite-be/internal/entities"
	"appsuite-be/internal/idgen"
	"appsuite-be/internal/metrics"
	"appsuite-be/internal/repository"
)

const (
	previewTTL      = time.Hour
	defaultHours    = 24
	maxHours        = 24 * 30
	previewCacheKey = "url:preview:%s"
)

// URLService defines the interface for URL business logic. A nil userID is the anonymous owner.
type URLService interface {
	// GetOrCreate returns the owner's mapping for rawURL, creating it on first use.
	// created reports whether this call inserted the row.
	GetOrCreate(ctx context.Context, userID *string, rawURL string) (url *entities.URL, created bool, err error)
	// Resolve counts one click and returns the mapping.
	Resolve(ctx context.Context, shortCode string) (*entities.URL, error)
	// Preview returns the target of a short code without counting a click.
	Preview(ctx context.Context, shortCode string) (string, error)
	History(ctx context.Context, userID *string) ([]*entities.URL, error)
	Delete(ctx context.Context, userID *string, id string) error
	ClearHistory(ctx context.Context, userID *string) (int, error)
	Stats(ctx context.Context, userID *string, shortCode string) (*entities.URL, error)
	Analytics(ctx context.Context, userID *string, shortCode string, hours int) ([]entities.ClickBucket, error)
}

type urlService struct {
	repo    repository.URLRepository
	cache   cache.Cache
	gen     idgen.Generator
	checker URLChecker
	logger  *zap.Logger
	now     func() time.Time
}

type URLServiceOption func(*urlService)

// WithURLChecker enables a reachability probe before new mappings are stored.
func WithURLChecker(checker URLChecker) URLServiceOption {
	return func(s *urlService) {
		s.checker = checker
	}
}

// NewURLService creates a new URL service
func NewURLService(repo repository.URLRepository, cacheClient cache.Cache, gen idgen.Generator, logger *zap.Logger, opts ...URLServiceOption) URLService {
	svc := &urlService{
		repo:   repo,
		cache:  cacheClient,
		gen:    gen,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

type previewEntry struct {
	OriginalURL string `json:"original_url"`
}

func (s *urlService) GetOrCreate(ctx context.Context, userID *string, rawURL string) (*entities.URL, bool, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByOwnerAndURL(ctx, userID, normalized)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, err
	}

	if s.checker != nil {
		if err := s.checker.Check(ctx, normalized); err != nil {
			return nil, false, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}

		code, err := s.gen.Generate(ctx)
		if err != nil {
			return nil, false, fmt.Errorf("failed to generate short code: %w", err)
		}

		created, err := s.repo.CreateIfAbsent(ctx, &entities.URL{
			UserID:      userID,
			OriginalURL: normalized,
			ShortCode:   code,
		})
		if err == nil {
			metrics.URLsCreated.WithLabelValues(metrics.Variant(userID)).Inc()
			s.logger.Info("short URL created",
				zap.String("short_code", created.ShortCode),
				zap.String("variant", metrics.Variant(userID)),
			)
			return created, true, nil
		}
		if errors.Is(err, repository.ErrNotFound) {
			// the owner no longer exists
			return nil, false, ErrInvalidCredentials
		}
		if !errors.Is(err, repository.ErrConflict) {
			return nil, false, err
		}

		// A concurrent request may have stored the same URL for this owner.
		existing, err := s.repo.FindByOwnerAndURL(ctx, userID, normalized)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, false, err
		}

		metrics.CodeCollisions.Inc()
		s.logger.Debug("short code collision, retrying", zap.String("short_code", code))
	}
}

func (s *urlService) Resolve(ctx context.Context, shortCode string) (*entities.URL, error) {
	url, err := s.repo.IncrementClickCount(ctx, shortCode)
	if errors.Is(err, repository.ErrNotFound) {
		metrics.Redirects.WithLabelValues("not_found").Inc()
		return nil, ErrURLNotFound
	}
	if err != nil {
		return nil, err
	}
	metrics.Redirects.WithLabelValues("found").Inc()
	return url, nil
}

func (s *urlService) Preview(ctx context.Context, shortCode string) (string, error) {
	key := fmt.Sprintf(previewCacheKey, shortCode)

	var entry previewEntry
	if err := s.cache.GetJSON(ctx, key, &entry); err == nil && entry.OriginalURL != "" {
		metrics.CacheHits.WithLabelValues("preview").Inc()
		return entry.OriginalURL, nil
	} else if err != nil && !errors.Is(err, cache.ErrMiss) {
		s.logger.Warn("preview cache read failed", zap.String("short_code", shortCode), zap.Error(err))
	}
	metrics.CacheMisses.WithLabelValues("preview").Inc()

	url, err := s.repo.FindByShortCode(ctx, shortCode)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrURLNotFound
	}
	if err != nil {
		return "", err
	}

	if err := s.cache.SetJSON(ctx, key, previewEntry{OriginalURL: url.OriginalURL}, previewTTL); err != nil {
		s.logger.Warn("preview cache write failed", zap.String("short_code", shortCode), zap.Error(err))
	}
	return url.OriginalURL, nil
}

func (s *urlService) History(ctx context.Context, userID *string) ([]*entities.URL, error) {
	return s.repo.ListByOwner(ctx, userID)
}

func (s *urlService) Delete(ctx context.Context, userID *string, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrURLNotFound
	}

	url, err := s.repo.Delete(ctx, id, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrURLNotFound
	}
	if err != nil {
		return err
	}

	s.invalidate(ctx, url.ShortCode)
	return nil
}

func (s *urlService) ClearHistory(ctx context.Context, userID *string) (int, error) {
	codes, err := s.repo.DeleteAllByOwner(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx, codes...)
	return len(codes), nil
}

// invalidate drops cached previews; failures only cost a stale preview until the TTL runs out.
func (s *urlService) invalidate(ctx context.Context, shortCodes ...string) {
	if len(shortCodes) == 0 {
		return
	}
	keys := make([]string, len(shortCodes))
	for i, code := range shortCodes {
		keys[i] = fmt.Sprintf(previewCacheKey, code)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("preview cache invalidation failed", zap.Int("keys", len(keys)), zap.Error(err))
	}
}

func (s *urlService) Stats(ctx context.Context, userID *string, shortCode string) (*entities.URL, error) {
	url, err := s.repo.FindOwnedByShortCode(ctx, shortCode, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrURLNotFound
	}
	if err != nil {
		return nil, err
	}
	return url, nil
}

func (s *urlService) Analytics(ctx context.Context, userID *string, shortCode string, hours int) ([]entities.ClickBucket, error) {
	if hours <= 0 {
		hours = defaultHours
	}
	if hours > maxHours {
		return nil, invalid(fmt.Sprintf("hours must be at most %d", maxHours))
	}

	url, err := s.Stats(ctx, userID, shortCode)
	if err != nil {
		return nil, err
	}

	window := time.Duration(hours) * time.Hour
	return s.repo.GetClickAnalytics(ctx, url.ID, s.now().Add(-window), BucketWidth(window))
}

// BucketWidth picks the analytics bucket size for a time window.
func BucketWidth(window time.Duration) time.Duration {
	switch {
	case window <= 6*time.Hour:
		return 10 * time.Minute
	case window <= 12*time.Hour:
		return 30 * time.Minute
	case window <= 24*time.Hour:
		return time.Hour
	case window <= 72*time.Hour:
		return 6 * time.Hour
	default:
		return 24 * time.Hour
	}
}
