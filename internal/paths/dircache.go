package paths

import (
	"fmt"
	"os"
	"sync"
)

// DirCache creates destination directories once per run. It is safe for
// concurrent use; an existing directory is never an error.
type DirCache struct {
	mu   sync.Mutex
	made map[string]struct{}
}

func NewDirCache() *DirCache {
	return &DirCache{made: map[string]struct{}{}}
}

// Ensure creates dir and its parents unless a previous call already did.
func (c *DirCache) Ensure(dir string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.made[dir]; ok {
		return nil
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	c.made[dir] = struct{}{}
	return nil
}

// Created reports how many distinct directories were ensured.
func (c *DirCache) Created() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.made)
}
