package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// ReplyCache provides filesystem-based caching for model replies. Sampling
// is deterministic, so an identical prompt to the same model yields the same
// reply and can be served from disk.
type ReplyCache struct {
	cacheDir string
	mutex    sync.RWMutex
}

// NewReplyCache creates a new reply cache with the specified directory
func NewReplyCache(cacheDir string) *ReplyCache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		slog.Error("Failed to create cache directory", "dir", cacheDir, "error", err)
	}

	return &ReplyCache{
		cacheDir: cacheDir,
	}
}

func (rc *ReplyCache) cacheKey(provider, model, prompt string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", provider, model, prompt)))
	return hex.EncodeToString(hash[:])
}

func (rc *ReplyCache) cachePath(key string) string {
	return filepath.Join(rc.cacheDir, key+".txt")
}

// Get retrieves a cached reply if it exists
func (rc *ReplyCache) Get(provider, model, prompt string) (string, bool) {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()

	path := rc.cachePath(rc.cacheKey(provider, model, prompt))
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Error("Failed to read cached reply", "path", path, "error", err)
		}
		return "", false
	}

	slog.Info("Cache hit for model reply", "provider", provider, "model", model)
	return string(data), true
}

// Set stores a reply in the cache
func (rc *ReplyCache) Set(provider, model, prompt, reply string) error {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	path := rc.cachePath(rc.cacheKey(provider, model, prompt))
	if err := os.WriteFile(path, []byte(reply), 0644); err != nil {
		slog.Error("Failed to write reply to cache", "path", path, "error", err)
		return err
	}
	return nil
}

// Stats returns the number of cached replies and their total size.
func (rc *ReplyCache) Stats() (int, int64, error) {
	rc.mutex.RLock()
	defer rc.mutex.RUnlock()

	entries, err := os.ReadDir(rc.cacheDir)
	if err != nil {
		return 0, 0, err
	}

	var totalSize int64
	fileCount := 0
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".txt" {
			fileCount++
			if info, err := entry.Info(); err == nil {
				totalSize += info.Size()
			}
		}
	}
	return fileCount, totalSize, nil
}
