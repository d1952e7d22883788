// Package storage stores uploaded files on a configurable disk.
//
// Two drivers are available:
//   - "local": a directory on the API host, served back under /storage
//   - "s3":    S3-compatible object storage (AWS S3, MinIO, R2)
//
// STORAGE_DISK picks the default disk:
//
//	storage.Connect()
//	err := storage.Default().Put(ctx, "images/ab12.png", file, "image/png")
//	url := storage.Default().URL("images/ab12.png")
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/kicksup/kicksup/config"
	"github.com/kicksup/kicksup/pkg/logger"
)

// ErrNotFound is returned by Get for a missing object.
var ErrNotFound = errors.New("storage: file not found")

// ErrInvalidPath is returned for keys that escape the disk root.
var ErrInvalidPath = errors.New("storage: invalid path")

// Disk is a flat key/object store.
type Disk interface {
	// Put writes r under key, replacing any previous content.
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	// Get opens key for reading. The caller closes it.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	// Delete removes key. A missing key is not an error.
	Delete(ctx context.Context, key string) error
	// URL is the public address of key.
	URL(key string) string
}

var (
	mu          sync.RWMutex
	disks       = map[string]Disk{}
	defaultName = "local"
)

// Connect boots the configured disks. The local disk is always available;
// the s3 disk only when S3_BUCKET is set.
func Connect() error {
	mu.Lock()
	defer mu.Unlock()

	defaultName = config.StorageDefault()
	disks["local"] = NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())

	if config.StorageS3Bucket() != "" {
		d, err := NewS3Disk(context.Background(), S3Options{
			Bucket:   config.StorageS3Bucket(),
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			BaseURL:  config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("storage: s3 disk disabled", "error", err)
		} else {
			disks["s3"] = d
		}
	}

	if _, ok := disks[defaultName]; !ok {
		return fmt.Errorf("storage: default disk %q is not configured", defaultName)
	}
	return nil
}

// Register installs a disk under name, replacing any existing one.
func Register(name string, d Disk) {
	mu.Lock()
	disks[name] = d
	mu.Unlock()
}

// SetDefault changes the default disk name.
func SetDefault(name string) {
	mu.Lock()
	defaultName = name
	mu.Unlock()
}

// Use returns the named disk.
func Use(name string) (Disk, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the STORAGE_DISK disk, or nil before Connect.
func Default() Disk {
	mu.RLock()
	defer mu.RUnlock()
	return disks[defaultName]
}

// DefaultName reports the configured default disk name.
func DefaultName() string {
	mu.RLock()
	defer mu.RUnlock()
	return defaultName
}

// cleanKey normalises key to a relative slash path and rejects traversal.
func cleanKey(key string) (string, error) {
	k := strings.TrimLeft(strings.ReplaceAll(key, "\\", "/"), "/")
	if k == "" {
		return "", ErrInvalidPath
	}
	cleaned := path.Clean(k)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(key, "/")
}
