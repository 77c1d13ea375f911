package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"onboardu/config"
)

// Storage persists uploaded files. Save returns a reference that URL turns
// into a publicly reachable address.
type Storage interface {
	Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
	URL(baseURL, path string) string
}

// FromConfig builds the backend selected by STORAGE_DRIVER.
func FromConfig(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case "", "local":
		return NewLocal(cfg.MediaRoot, cfg.MediaURL), nil
	case "cloudinary":
		return NewCloudinary(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadPreset)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}

func isAbsoluteURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
