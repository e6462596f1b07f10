/*
Package storage presigns image uploads to S3-compatible object storage and removes
images that are no longer referenced.
*/
package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"remix/internal/pkg/errs"

	"github.com/google/uuid"
)

const (
	// MaxImageSize is the largest accepted image, in bytes.
	MaxImageSize int64 = 5 << 20

	// PresignedURLDuration is how long an upload URL stays valid.
	PresignedURLDuration = 15 * time.Minute
)

var allowedImageTypes = map[string][]string{
	"image/jpeg": {".jpg", ".jpeg"},
	"image/png":  {".png"},
	"image/webp": {".webp"},
	"image/gif":  {".gif"},
}

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// S3PublicBaseURL prefixes object keys to form the URLs stored on recipes and remixes.
	S3PublicBaseURL string
}

// StorageService defines the public interface for the file storage service.
type StorageService interface {
	// PresignUpload generates a pre-signed URL for uploading a file.
	PresignUpload(ctx context.Context, key, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes the file specified by the given key.
	Delete(ctx context.Context, key string) error

	// PublicURL returns the URL an uploaded object is served from.
	PublicURL(key string) string

	// KeyFromURL returns the object key behind a URL returned by PublicURL.
	// It reports false for URLs that point elsewhere.
	KeyFromURL(url string) (string, bool)
}

// NewStorageService is the factory function for StorageService.
func NewStorageService(ctx context.Context, cfg ServiceConfig) (StorageService, error) {
	// Currently, only S3 compatible implementations are supported.
	return newS3Client(ctx, cfg)
}

// ImageUpload describes an image the client is about to upload.
type ImageUpload struct {
	FileName string `json:"fileName" validate:"required,max=255"`
	MimeType string `json:"mimeType" validate:"required"`
	FileSize int64  `json:"fileSize" validate:"required,gt=0"`
}

// Validate checks the image type and size.
func (u ImageUpload) Validate() *errs.CustomError {
	if u.FileSize > MaxImageSize {
		return errs.NewError(errs.ErrImageTooLarge)
	}

	exts, ok := allowedImageTypes[strings.ToLower(u.MimeType)]
	if !ok {
		return errs.NewError(errs.ErrImageTypeInvalid)
	}

	ext := strings.ToLower(filepath.Ext(u.FileName))
	for _, e := range exts {
		if e == ext {
			return nil
		}
	}
	return errs.NewError(errs.ErrImageTypeInvalid)
}

// ImageKey returns a fresh object key for an image of the entity kind/id.
func ImageKey(kind string, id int64, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return fmt.Sprintf("%s/%d/%s%s", kind, id, uuid.New().String(), ext)
}

// ImageConfirm names an uploaded object to attach to an item.
type ImageConfirm struct {
	FileKey string `json:"fileKey" validate:"required,max=1024"`
}

// OwnsKey reports whether key was issued by ImageKey for the same kind and id.
func OwnsKey(kind string, id int64, key string) bool {
	rest, ok := strings.CutPrefix(key, fmt.Sprintf("%s/%d/", kind, id))
	return ok && rest != "" && !strings.Contains(rest, "/")
}

func publicURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

func keyFromURL(base, url string) (string, bool) {
	prefix := strings.TrimRight(base, "/") + "/"
	if base == "" || !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
