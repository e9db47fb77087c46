package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// SeenStore records which articles have already been processed so that
// scheduled runs only notify about new ones. Entries expire after a TTL;
// ingestion results themselves are never stored.
type SeenStore interface {
	Contains(ctx context.Context, key string) (bool, error)
	Mark(ctx context.Context, key string, entry *SeenEntry) error
	Clear(ctx context.Context) error
	Close() error
}

// SeenEntry is the record kept per seen article
type SeenEntry struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Topic     string    `json:"topic"`
	SeenAt    time.Time `json:"seen_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GenerateKey derives the store key for an article URL. MD5 keeps keys a
// consistent length regardless of URL shape.
func GenerateKey(url string) string {
	hash := md5.Sum([]byte(url))
	return fmt.Sprintf("article:%x", hash)
}

// NewStore creates a seen store of the given type ("memory" or
// "cloud-storage").
func NewStore(storeType, bucket string, ttl time.Duration) (SeenStore, error) {
	switch storeType {
	case "memory":
		return NewMemoryStore(ttl), nil
	case "cloud-storage":
		return NewCloudStorageStore(bucket, ttl)
	default:
		return nil, fmt.Errorf("unsupported seen store type: %s", storeType)
	}
}

// MemoryStore implements SeenStore in process memory
type MemoryStore struct {
	entries     map[string]*SeenEntry
	mutex       sync.RWMutex
	ttl         time.Duration
	stopCleanup chan struct{}
}

// NewMemoryStore creates an in-memory seen store
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	store := &MemoryStore{
		entries:     make(map[string]*SeenEntry),
		ttl:         ttl,
		stopCleanup: make(chan struct{}),
	}

	// Start cleanup goroutine
	go store.cleanup()

	return store
}

// Contains reports whether key is present and unexpired
func (s *MemoryStore) Contains(ctx context.Context, key string) (bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	entry, exists := s.entries[key]
	if !exists {
		return false, nil
	}

	if time.Now().After(entry.ExpiresAt) {
		return false, nil
	}

	return true, nil
}

// Mark records an entry under key
func (s *MemoryStore) Mark(ctx context.Context, key string, entry *SeenEntry) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	entry.Key = key
	entry.SeenAt = now
	entry.ExpiresAt = now.Add(s.ttl)

	s.entries[key] = entry
	return nil
}

// Clear removes all entries
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.entries = make(map[string]*SeenEntry)
	return nil
}

// cleanup removes expired entries periodically
func (s *MemoryStore) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCleanup:
			return
		case <-ticker.C:
			s.cleanupExpired()
		}
	}
}

// cleanupExpired removes expired entries
func (s *MemoryStore) cleanupExpired() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	for key, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, key)
		}
	}
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	return nil
}

// CloudStorageStore implements SeenStore on Google Cloud Storage so the
// seen index survives across short-lived server and function instances.
type CloudStorageStore struct {
	client     *storage.Client
	bucketName string
	ttl        time.Duration
	prefix     string
}

// NewCloudStorageStore creates a Cloud Storage backed seen store
func NewCloudStorageStore(bucketName string, ttl time.Duration) (*CloudStorageStore, error) {
	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}

	return &CloudStorageStore{
		client:     client,
		bucketName: bucketName,
		ttl:        ttl,
		prefix:     "seen/",
	}, nil
}

// Contains reports whether key exists and is unexpired, deleting entries
// that have passed their TTL.
func (s *CloudStorageStore) Contains(ctx context.Context, key string) (bool, error) {
	obj := s.client.Bucket(s.bucketName).Object(s.objectName(key))

	reader, err := obj.NewReader(ctx)
	if err != nil {
		if err == storage.ErrObjectNotExist {
			return false, nil
		}
		return false, fmt.Errorf("opening object reader: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return false, fmt.Errorf("reading object data: %w", err)
	}

	var entry SeenEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return false, fmt.Errorf("unmarshaling seen entry: %w", err)
	}

	if time.Now().After(entry.ExpiresAt) {
		if err := obj.Delete(ctx); err != nil && err != storage.ErrObjectNotExist {
			return false, fmt.Errorf("deleting expired entry: %w", err)
		}
		return false, nil
	}

	return true, nil
}

// Mark writes an entry under key
func (s *CloudStorageStore) Mark(ctx context.Context, key string, entry *SeenEntry) error {
	obj := s.client.Bucket(s.bucketName).Object(s.objectName(key))

	now := time.Now()
	entry.Key = key
	entry.SeenAt = now
	entry.ExpiresAt = now.Add(s.ttl)

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshaling seen entry: %w", err)
	}

	writer := obj.NewWriter(ctx)
	writer.ContentType = "application/json"

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("writing object data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("closing object writer: %w", err)
	}

	return nil
}

// Clear removes all entries under the store prefix
func (s *CloudStorageStore) Clear(ctx context.Context) error {
	bucket := s.client.Bucket(s.bucketName)
	it := bucket.Objects(ctx, &storage.Query{Prefix: s.prefix})

	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return fmt.Errorf("listing objects: %w", err)
		}

		if err := bucket.Object(attrs.Name).Delete(ctx); err != nil {
			return fmt.Errorf("deleting object %s: %w", attrs.Name, err)
		}
	}

	return nil
}

// Close closes the Cloud Storage client
func (s *CloudStorageStore) Close() error {
	return s.client.Close()
}

func (s *CloudStorageStore) objectName(key string) string {
	return s.prefix + key + ".json"
}
