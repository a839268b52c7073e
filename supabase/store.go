// Package supabase implements urlcast.ObjectStore on Supabase Storage.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/fwojciec/urlcast"
	supabasego "github.com/supabase-community/supabase-go"
	storage_go "github.com/supabase-community/storage-go"
)

// Ensure Store implements urlcast.ObjectStore at compile time.
var _ urlcast.ObjectStore = (*Store)(nil)

// StorageClient is the subset of *storage_go.Client used by Store.
type StorageClient interface {
	UploadFile(bucketID, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
	DownloadFile(bucketID, filePath string, urlOptions ...storage_go.UrlOptions) ([]byte, error)
	GetPublicUrl(bucketID, filePath string, urlOptions ...storage_go.UrlOptions) storage_go.SignedUrlResponse
}

// Config holds the settings of a Supabase-backed store.
type Config struct {
	// URL is the Supabase project URL, e.g. "https://<ref>.supabase.co".
	URL string

	// Key is the service role key.
	Key string

	// Bucket is the public storage bucket objects are written to.
	Bucket string

	// CDNDomain, when set, replaces the bucket's public URL with
	// "https://<CDNDomain>/<key>".
	CDNDomain string
}

// Store writes objects to a Supabase Storage bucket.
type Store struct {
	// The storage client keeps upload headers on a shared transport.
	mu sync.Mutex

	client    StorageClient
	bucket    string
	cdnDomain string
}

// NewStore creates a Store from a storage client.
func NewStore(client StorageClient, bucket, cdnDomain string) *Store {
	return &Store{
		client:    client,
		bucket:    bucket,
		cdnDomain: strings.Trim(cdnDomain, "/"),
	}
}

// Open connects to Supabase and returns a Store for cfg.Bucket.
func Open(cfg Config) (*Store, error) {
	if cfg.Bucket == "" {
		return nil, urlcast.Errorf(urlcast.EINVALID, "supabase bucket required")
	}
	client, err := supabasego.NewClient(cfg.URL, cfg.Key, nil)
	if err != nil {
		return nil, fmt.Errorf("initialize supabase client: %w", err)
	}
	return NewStore(client.Storage, cfg.Bucket, cfg.CDNDomain), nil
}

// Put uploads r to key, replacing any existing object.
func (s *Store) Put(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	upsert := true
	cacheControl := "3600"
	s.mu.Lock()
	_, err := s.client.UploadFile(s.bucket, key, r, storage_go.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	s.mu.Unlock()
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return s.URL(key), nil
}

// Get downloads the object at key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.client.DownloadFile(s.bucket, key)
	if isNotFound(err) {
		return nil, urlcast.Errorf(urlcast.ENOTFOUND, "object %q not found", key)
	}
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", key, err)
	}
	return data, nil
}

// URL returns the public URL of key.
func (s *Store) URL(key string) string {
	if s.cdnDomain != "" {
		return "https://" + s.cdnDomain + "/" + strings.TrimLeft(key, "/")
	}
	return s.client.GetPublicUrl(s.bucket, key).SignedURL
}

func isNotFound(err error) bool {
	var serr *storage_go.StorageError
	if !errors.As(err, &serr) {
		return false
	}
	return serr.Status == http.StatusNotFound || strings.Contains(strings.ToLower(serr.Message), "not found")
}
