package database

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("expected 3 migrations, got %d", len(files))
	}

	for _, name := range files {
		data, err := fs.ReadFile(migrationsFS, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		body := string(data)
		if !strings.Contains(body, "-- +goose Up") || !strings.Contains(body, "-- +goose Down") {
			t.Errorf("%s is missing goose annotations", name)
		}
	}
}

func TestShortCodeIsUnique(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, migrationsDir+"/00002_create_urls.sql")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "CREATE UNIQUE INDEX IF NOT EXISTS urls_short_code_key ON urls (short_code)") {
		t.Error("urls.short_code must carry a unique index")
	}
}
