package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Cloudinary uploads files to a Cloudinary account; the stored reference is
// the secure URL returned by the upload.
type Cloudinary struct {
	cld          *cloudinary.Cloudinary
	uploadPreset string
}

func NewCloudinary(cloudName, apiKey, apiSecret, uploadPreset string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld, uploadPreset: uploadPreset}, nil
}

func (c *Cloudinary) Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	params := uploader.UploadParams{
		PublicID:     uuid.NewString(),
		Folder:       folder,
		UploadPreset: c.uploadPreset,
	}
	// certificates may be PDFs; let cloudinary detect the type
	if strings.EqualFold(filepath.Ext(file.Filename), ".pdf") {
		params.ResourceType = "auto"
	}

	resp, err := c.cld.Upload.Upload(ctx, src, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}

func (c *Cloudinary) URL(_ string, path string) string {
	return path
}
