package crawler

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/gocolly/colly/v2/storage"
	bolt "go.etcd.io/bbolt"
)

var (
	visitedBucket = []byte("visited")
	cookieBucket  = []byte("cookies")
)

// BoltDBStorage keeps the search engine cookies of the HTTP backend across
// restarts. Visited markers are stored too so colly's bookkeeping works, but
// the collector allows revisits.
type BoltDBStorage struct {
	DBPath string
	db     *bolt.DB
	mu     sync.RWMutex
}

// Init initializes the BoltDB database
func (s *BoltDBStorage) Init() error {
	dbDir := filepath.Dir(s.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}

	db, err := bolt.Open(s.DBPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{visitedBucket, cookieBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create buckets: %w", err)
	}

	s.mu.Lock()
	s.db = db
	s.mu.Unlock()
	return nil
}

// Visited implements storage.Storage interface
func (s *BoltDBStorage) Visited(requestID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(visitedBucket).Put(visitKey(requestID), []byte("1"))
	})
}

// IsVisited implements storage.Storage interface
func (s *BoltDBStorage) IsVisited(requestID uint64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var visited bool
	err := s.db.View(func(tx *bolt.Tx) error {
		visited = tx.Bucket(visitedBucket).Get(visitKey(requestID)) != nil
		return nil
	})
	return visited, err
}

// Cookies implements storage.Storage interface
func (s *BoltDBStorage) Cookies(u *url.URL) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var cookies string
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(cookieBucket).Get([]byte(u.Host)); v != nil {
			cookies = string(v)
		}
		return nil
	})
	return cookies
}

// SetCookies implements storage.Storage interface
func (s *BoltDBStorage) SetCookies(u *url.URL, cookies string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(cookieBucket).Put([]byte(u.Host), []byte(cookies))
	})
}

// Close closes the BoltDB database
func (s *BoltDBStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func visitKey(requestID uint64) []byte {
	return []byte(strconv.FormatUint(requestID, 10))
}

// Ensure BoltDBStorage implements storage.Storage interface
var _ storage.Storage = (*BoltDBStorage)(nil)
