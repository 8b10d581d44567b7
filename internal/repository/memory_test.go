package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"appsuite-be/internal/entities"
)

func strPtr(s string) *string { return &s }

func TestMemoryCreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	urls := NewMemoryStore().URLs()

	created, err := urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://example.com", ShortCode: "abc123", ClickCount: 7})
	if err != nil {
		t.Fatalf("CreateIfAbsent failed: %v", err)
	}
	if created.ID == "" || created.ClickCount != 0 || created.CreatedAt.IsZero() {
		t.Errorf("unexpected row %+v", created)
	}

	// same code, different url
	if _, err := urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://other.com", ShortCode: "abc123"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate code error = %v; want ErrConflict", err)
	}
	// same owner and url, different code
	if _, err := urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://example.com", ShortCode: "zzz999"}); !errors.Is(err, ErrConflict) {
		t.Errorf("duplicate url error = %v; want ErrConflict", err)
	}

	found, err := urls.FindByOwnerAndURL(ctx, nil, "https://example.com")
	if err != nil || found.ShortCode != "abc123" {
		t.Errorf("FindByOwnerAndURL = %+v, %v", found, err)
	}
}

func TestMemoryOwnersAreSeparate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	user, err := store.Users().Create(ctx, "alice1", "hash")
	if err != nil {
		t.Fatal(err)
	}
	urls := store.URLs()

	if _, err := urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://example.com", ShortCode: "anon01"}); err != nil {
		t.Fatal(err)
	}
	if _, err := urls.CreateIfAbsent(ctx, &entities.URL{UserID: strPtr(user.ID), OriginalURL: "https://example.com", ShortCode: "user01"}); err != nil {
		t.Fatalf("owned mapping of the same url should be allowed: %v", err)
	}

	if _, err := urls.FindOwnedByShortCode(ctx, "anon01", strPtr(user.ID)); !errors.Is(err, ErrNotFound) {
		t.Errorf("anonymous code visible to user: %v", err)
	}
	if _, err := urls.FindOwnedByShortCode(ctx, "user01", strPtr(user.ID)); err != nil {
		t.Errorf("FindOwnedByShortCode failed: %v", err)
	}

	// the code namespace is shared by every owner
	if _, err := urls.FindByShortCode(ctx, "user01"); err != nil {
		t.Errorf("FindByShortCode failed: %v", err)
	}
}

func TestMemoryCreateForUnknownOwner(t *testing.T) {
	urls := NewMemoryStore().URLs()
	_, err := urls.CreateIfAbsent(context.Background(), &entities.URL{UserID: strPtr("ghost"), OriginalURL: "https://example.com", ShortCode: "abc123"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v; want ErrNotFound", err)
	}
}

func TestMemoryListByOwnerNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }
	urls := store.URLs()

	for _, code := range []string{"aaaaaa", "bbbbbb", "cccccc"} {
		if _, err := urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://example.com/" + code, ShortCode: code}); err != nil {
			t.Fatal(err)
		}
	}

	list, err := urls.ListByOwner(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("got %d rows; want 3", len(list))
	}
	if list[0].ShortCode != "cccccc" || list[2].ShortCode != "aaaaaa" {
		t.Errorf("order = %s, %s, %s", list[0].ShortCode, list[1].ShortCode, list[2].ShortCode)
	}
}

func TestMemoryIncrementConcurrent(t *testing.T) {
	ctx := context.Background()
	urls := NewMemoryStore().URLs()
	if _, err := urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://example.com", ShortCode: "abc123"}); err != nil {
		t.Fatal(err)
	}

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := urls.IncrementClickCount(ctx, "abc123"); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	url, _ := urls.FindByShortCode(ctx, "abc123")
	if url.ClickCount != n {
		t.Errorf("click count = %d; want %d", url.ClickCount, n)
	}

	if _, err := urls.IncrementClickCount(ctx, "nope00"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown code error = %v; want ErrNotFound", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	user, _ := store.Users().Create(ctx, "alice1", "hash")
	urls := store.URLs()

	row, _ := urls.CreateIfAbsent(ctx, &entities.URL{UserID: strPtr(user.ID), OriginalURL: "https://example.com", ShortCode: "abc123"})

	if _, err := urls.Delete(ctx, row.ID, nil); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete by other owner error = %v; want ErrNotFound", err)
	}
	deleted, err := urls.Delete(ctx, row.ID, strPtr(user.ID))
	if err != nil || deleted.ShortCode != "abc123" {
		t.Fatalf("Delete = %+v, %v", deleted, err)
	}
	if _, err := urls.FindByShortCode(ctx, "abc123"); !errors.Is(err, ErrNotFound) {
		t.Error("code should be released after delete")
	}
}

func TestMemoryDeleteAllByOwner(t *testing.T) {
	ctx := context.Background()
	urls := NewMemoryStore().URLs()
	for _, code := range []string{"aaaaaa", "bbbbbb"} {
		urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://example.com/" + code, ShortCode: code})
	}

	codes, err := urls.DeleteAllByOwner(ctx, nil)
	if err != nil || len(codes) != 2 {
		t.Fatalf("DeleteAllByOwner = %v, %v", codes, err)
	}
	list, _ := urls.ListByOwner(ctx, nil)
	if len(list) != 0 {
		t.Errorf("%d rows left", len(list))
	}
}

func TestMemoryUserDeleteCascades(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	users := store.Users()
	urls := store.URLs()

	user, _ := users.Create(ctx, "alice1", "hash")
	urls.CreateIfAbsent(ctx, &entities.URL{UserID: strPtr(user.ID), OriginalURL: "https://example.com", ShortCode: "abc123"})
	urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://example.com", ShortCode: "anon01"})

	if err := users.Delete(ctx, user.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := urls.FindByShortCode(ctx, "abc123"); !errors.Is(err, ErrNotFound) {
		t.Error("owned mapping survived account deletion")
	}
	if _, err := urls.FindByShortCode(ctx, "anon01"); err != nil {
		t.Error("anonymous mapping should survive")
	}
	if _, err := users.FindByUsername(ctx, "alice1"); !errors.Is(err, ErrNotFound) {
		t.Error("username should be free again")
	}
	if err := users.Delete(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v; want ErrNotFound", err)
	}
}

func TestMemoryUsernameConflict(t *testing.T) {
	users := NewMemoryStore().Users()
	ctx := context.Background()
	if _, err := users.Create(ctx, "alice1", "hash"); err != nil {
		t.Fatal(err)
	}
	if _, err := users.Create(ctx, "alice1", "other"); !errors.Is(err, ErrConflict) {
		t.Errorf("error = %v; want ErrConflict", err)
	}
}

func TestMemoryClickAnalytics(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	clock := base
	store.now = func() time.Time { return clock }
	urls := store.URLs()

	row, _ := urls.CreateIfAbsent(ctx, &entities.URL{OriginalURL: "https://example.com", ShortCode: "abc123"})
	for _, offset := range []time.Duration{5 * time.Minute, 20 * time.Minute, 70 * time.Minute, 75 * time.Minute, 80 * time.Minute} {
		clock = base.Add(offset)
		urls.IncrementClickCount(ctx, "abc123")
	}

	got, err := urls.GetClickAnalytics(ctx, row.ID, base.Add(10*time.Minute), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	want := []entities.ClickBucket{
		{Time: base, Count: 1},
		{Time: base.Add(time.Hour), Count: 3},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v; want %+v", got, want)
	}
	for i := range want {
		if !got[i].Time.Equal(want[i].Time) || got[i].Count != want[i].Count {
			t.Errorf("bucket %d = %+v; want %+v", i, got[i], want[i])
		}
	}
}
