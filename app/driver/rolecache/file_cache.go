// Package rolecache persists the identity→role map to a device-local
// YAML file so a warm start resolves the role without a network round
// trip. The cache is an optimization only; the profile record is always
// authoritative.
package rolecache

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"marketplace-core/app/domain"
)

// FileCache implements port.RoleCache over a single YAML file.
// Single writer, last write wins; every mutation rewrites the file via
// an atomic rename.
type FileCache struct {
	path   string
	logger *slog.Logger

	mu    sync.Mutex
	roles map[string]string
}

// Open loads (or initializes) the cache file
func Open(path string, logger *slog.Logger) (*FileCache, error) {
	c := &FileCache{
		path:   path,
		logger: logger.With("component", "role_cache"),
		roles:  make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read role cache: %w", err)
	}
	if err := yaml.Unmarshal(data, &c.roles); err != nil {
		// A corrupt cache is discarded, not fatal: next resolution
		// repopulates it from the profile record.
		c.logger.Warn("discarding corrupt role cache", "path", path, "error", err)
		c.roles = make(map[string]string)
	}
	if c.roles == nil {
		c.roles = make(map[string]string)
	}
	return c, nil
}

// Get returns the cached role for an identity
func (c *FileCache) Get(identityID string) (domain.Role, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.roles[identityID]
	if !ok {
		return "", false, nil
	}
	role, err := domain.ParseRole(raw)
	if err != nil {
		return "", false, err
	}
	return role, true, nil
}

// Set stores the role for an identity
func (c *FileCache) Set(identityID string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, role)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.roles[identityID] = string(role)
	return c.persistLocked()
}

// Delete removes the cached role for an identity
func (c *FileCache) Delete(identityID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.roles[identityID]; !ok {
		return nil
	}
	delete(c.roles, identityID)
	return c.persistLocked()
}

func (c *FileCache) persistLocked() error {
	data, err := yaml.Marshal(c.roles)
	if err != nil {
		return fmt.Errorf("encode role cache: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write role cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace role cache: %w", err)
	}
	return nil
}
