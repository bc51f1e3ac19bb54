// Package storage uploads post images to the blob store and resolves their
// public URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

type ImageStore interface {
	Upload(ctx context.Context, r io.Reader, filename string) (string, error)
}

// ObjectName builds a collision-resistant name from the upload time, a
// random suffix and the original extension. Identical bytes uploaded twice
// get two distinct names; nothing is content-addressed.
func ObjectName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), suffix, ext)
}

type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryStore(cloudinaryURL string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld, folder: "admin/posts"}, nil
}

func (s *CloudinaryStore) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	name := ObjectName(filename)
	publicID := strings.TrimSuffix(name, filepath.Ext(name))

	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   s.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}
