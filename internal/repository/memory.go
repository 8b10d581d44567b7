package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"appsuite-be/internal/entities"
)

type memoryURL struct {
	url    entities.URL
	seq    int64
	clicks []time.Time
}

// MemoryStore keeps users and mappings in process memory. All operations are serialized by one
// mutex, which gives the same atomicity the Postgres unique indexes and in-place updates provide.
type MemoryStore struct {
	mu        sync.Mutex
	seq       int64
	urls      map[string]*memoryURL // by id
	codes     map[string]string     // short code -> id
	users     map[string]*entities.User
	usernames map[string]string // username -> id
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		urls:      make(map[string]*memoryURL),
		codes:     make(map[string]string),
		users:     make(map[string]*entities.User),
		usernames: make(map[string]string),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) URLs() URLRepository {
	return &memoryURLRepository{s: s}
}

func (s *MemoryStore) Users() UserRepository {
	return &memoryUserRepository{s: s}
}

func sameOwner(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyURL(u *entities.URL) *entities.URL {
	c := *u
	if u.UserID != nil {
		owner := *u.UserID
		c.UserID = &owner
	}
	return &c
}

type memoryURLRepository struct {
	s *MemoryStore
}

// ownerURL must be called with the lock held.
func (r *memoryURLRepository) ownerURL(userID *string, originalURL string) *memoryURL {
	for _, m := range r.s.urls {
		if sameOwner(m.url.UserID, userID) && m.url.OriginalURL == originalURL {
			return m
		}
	}
	return nil
}

func (r *memoryURLRepository) FindByOwnerAndURL(_ context.Context, userID *string, originalURL string) (*entities.URL, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if m := r.ownerURL(userID, originalURL); m != nil {
		return copyURL(&m.url), nil
	}
	return nil, ErrNotFound
}

func (r *memoryURLRepository) CreateIfAbsent(_ context.Context, url *entities.URL) (*entities.URL, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.codes[url.ShortCode]; taken {
		return nil, ErrConflict
	}
	if r.ownerURL(url.UserID, url.OriginalURL) != nil {
		return nil, ErrConflict
	}
	if url.UserID != nil {
		if _, ok := r.s.users[*url.UserID]; !ok {
			return nil, ErrNotFound
		}
	}

	row := copyURL(url)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	row.ClickCount = 0
	row.CreatedAt = r.s.now()

	r.s.seq++
	r.s.urls[row.ID] = &memoryURL{url: *row, seq: r.s.seq}
	r.s.codes[row.ShortCode] = row.ID
	return copyURL(row), nil
}

func (r *memoryURLRepository) FindByShortCode(_ context.Context, shortCode string) (*entities.URL, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.codes[shortCode]
	if !ok {
		return nil, ErrNotFound
	}
	return copyURL(&r.s.urls[id].url), nil
}

func (r *memoryURLRepository) FindOwnedByShortCode(ctx context.Context, shortCode string, userID *string) (*entities.URL, error) {
	url, err := r.FindByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	if !sameOwner(url.UserID, userID) {
		return nil, ErrNotFound
	}
	return url, nil
}

func (r *memoryURLRepository) IncrementClickCount(_ context.Context, shortCode string) (*entities.URL, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.codes[shortCode]
	if !ok {
		return nil, ErrNotFound
	}
	m := r.s.urls[id]
	m.url.ClickCount++
	m.clicks = append(m.clicks, r.s.now())
	return copyURL(&m.url), nil
}

func (r *memoryURLRepository) ListByOwner(_ context.Context, userID *string) ([]*entities.URL, error) {
	r.s.mu.Lock()
	owned := make([]*memoryURL, 0)
	for _, m := range r.s.urls {
		if sameOwner(m.url.UserID, userID) {
			owned = append(owned, m)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].url.CreatedAt.Equal(owned[j].url.CreatedAt) {
			return owned[i].url.CreatedAt.After(owned[j].url.CreatedAt)
		}
		return owned[i].seq > owned[j].seq
	})
	urls := make([]*entities.URL, len(owned))
	for i, m := range owned {
		urls[i] = copyURL(&m.url)
	}
	r.s.mu.Unlock()
	return urls, nil
}

// removeURL must be called with the lock held.
func (s *MemoryStore) removeURL(m *memoryURL) {
	delete(s.codes, m.url.ShortCode)
	delete(s.urls, m.url.ID)
}

func (r *memoryURLRepository) Delete(_ context.Context, id string, userID *string) (*entities.URL, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	m, ok := r.s.urls[id]
	if !ok || !sameOwner(m.url.UserID, userID) {
		return nil, ErrNotFound
	}
	r.s.removeURL(m)
	return copyURL(&m.url), nil
}

func (r *memoryURLRepository) DeleteAllByOwner(_ context.Context, userID *string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	codes := []string{}
	for _, m := range r.s.urls {
		if sameOwner(m.url.UserID, userID) {
			codes = append(codes, m.url.ShortCode)
			r.s.removeURL(m)
		}
	}
	return codes, nil
}

func (r *memoryURLRepository) GetClickAnalytics(_ context.Context, urlID string, since time.Time, bucket time.Duration) ([]entities.ClickBucket, error) {
	r.s.mu.Lock()
	m, ok := r.s.urls[urlID]
	var clicks []time.Time
	if ok {
		clicks = append(clicks, m.clicks...)
	}
	r.s.mu.Unlock()

	counts := make(map[int64]int64)
	for _, clickedAt := range clicks {
		if clickedAt.Before(since) {
			continue
		}
		counts[clickedAt.Truncate(bucket).Unix()]++
	}

	analytics := make([]entities.ClickBucket, 0, len(counts))
	for ts, count := range counts {
		analytics = append(analytics, entities.ClickBucket{Time: time.Unix(ts, 0).UTC(), Count: count})
	}
	sort.Slice(analytics, func(i, j int) bool { return analytics[i].Time.Before(analytics[j].Time) })
	return analytics, nil
}

type memoryUserRepository struct {
	s *MemoryStore
}

func (r *memoryUserRepository) Create(_ context.Context, username, passwordHash string) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.usernames[username]; taken {
		return nil, ErrConflict
	}
	user := &entities.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    r.s.now(),
	}
	r.s.users[user.ID] = user
	r.s.usernames[username] = user.ID

	c := *user
	return &c, nil
}

func (r *memoryUserRepository) FindByUsername(_ context.Context, username string) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, ok := r.s.usernames[username]
	if !ok {
		return nil, ErrNotFound
	}
	c := *r.s.users[id]
	return &c, nil
}

func (r *memoryUserRepository) FindByID(_ context.Context, id string) (*entities.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *user
	return &c, nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[id]
	if !ok {
		return ErrNotFound
	}
	for _, m := range r.s.urls {
		if m.url.UserID != nil && *m.url.UserID == id {
			r.s.removeURL(m)
		}
	}
	delete(r.s.usernames, user.Username)
	delete(r.s.users, id)
	return nil
}
