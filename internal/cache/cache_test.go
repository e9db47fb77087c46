package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestGenerateKey(t *testing.T) {
	key1 := GenerateKey("http://example.com/article-1")
	key2 := GenerateKey("http://example.com/article-2")

	if key1 == key2 {
		t.Error("Expected distinct keys for distinct URLs")
	}
	if key1 != GenerateKey("http://example.com/article-1") {
		t.Error("Expected stable keys for the same URL")
	}
	if !strings.HasPrefix(key1, "article:") {
		t.Errorf("Expected article: prefix, got %q", key1)
	}
}

func TestMemoryStoreMarkAndContains(t *testing.T) {
	store := NewMemoryStore(1 * time.Hour)
	defer store.Close()

	ctx := context.Background()
	key := GenerateKey("http://example.com/1")

	seen, err := store.Contains(ctx, key)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if seen {
		t.Error("Expected key to be unseen in fresh store")
	}

	entry := &SeenEntry{URL: "http://example.com/1", Title: "Article 1", Topic: "economy"}
	if err := store.Mark(ctx, key, entry); err != nil {
		t.Fatalf("Unexpected error marking entry: %v", err)
	}

	seen, err = store.Contains(ctx, key)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !seen {
		t.Error("Expected key to be seen after Mark")
	}

	if entry.SeenAt.IsZero() || entry.ExpiresAt.IsZero() {
		t.Error("Expected Mark to stamp SeenAt and ExpiresAt")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(-1 * time.Minute) // entries expire immediately
	defer store.Close()

	ctx := context.Background()
	key := GenerateKey("http://example.com/1")

	if err := store.Mark(ctx, key, &SeenEntry{URL: "http://example.com/1"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	seen, err := store.Contains(ctx, key)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if seen {
		t.Error("Expected expired entry to read as unseen")
	}
}

func TestMemoryStoreClear(t *testing.T) {
	store := NewMemoryStore(1 * time.Hour)
	defer store.Close()

	ctx := context.Background()
	key := GenerateKey("http://example.com/1")

	if err := store.Mark(ctx, key, &SeenEntry{URL: "http://example.com/1"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	seen, err := store.Contains(ctx, key)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if seen {
		t.Error("Expected cleared store to be empty")
	}
}

func TestNewStoreUnsupportedType(t *testing.T) {
	_, err := NewStore("redis", "", 1*time.Hour)
	if err == nil {
		t.Error("Expected error for unsupported store type")
	}
}

func TestNewStoreMemory(t *testing.T) {
	store, err := NewStore("memory", "", 1*time.Hour)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer store.Close()

	if _, ok := store.(*MemoryStore); !ok {
		t.Errorf("Expected *MemoryStore, got %T", store)
	}
}
