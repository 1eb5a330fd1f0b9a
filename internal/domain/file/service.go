package file

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"secureshare/internal/storage"

	"github.com/google/uuid"
)

// Service handles file upload, listing and two-phase deletion.
// Upload order is blob first, record second; the blob is removed again
// if the record insert fails.
type Service struct {
	repo    Repository
	store   storage.Store
	maxSize int64
}

func NewService(repo Repository, store storage.Store, maxSize int64) *Service {
	return &Service{repo: repo, store: store, maxSize: maxSize}
}

func (s *Service) Upload(ctx context.Context, ownerID string, fileHeader *multipart.FileHeader) (*File, error) {
	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	// Detect MIME type from the first 512 bytes.
	buf := make([]byte, 512)
	n, _ := src.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]

	if seeker, ok := src.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	path := buildStoragePath(ownerID, fileHeader.Filename)
	if err := s.store.Upload(ctx, path, src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	f := &File{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        fileHeader.Filename,
		Size:        fileHeader.Size,
		MimeType:    mimeType,
		StoragePath: path,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, f); err != nil {
		_ = s.store.Remove(ctx, []string{path}) // roll back the blob
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return f, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*File, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) GetByID(ctx context.Context, id, ownerID string) (*File, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return f, nil
}

// Delete removes the record and the blob. The record is tombstoned
// first so a crash between the two steps leaves a marker the reconcile
// job can finish from, never an orphaned live row.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	f, err := s.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	if err := s.repo.SoftDelete(ctx, f.ID); err != nil {
		return fmt.Errorf("failed to mark file deleted: %w", err)
	}

	if err := s.store.Remove(ctx, []string{f.StoragePath}); err != nil {
		return fmt.Errorf("%w: blob removal failed: %v", ErrPartialDelete, err)
	}

	if err := s.repo.HardDelete(ctx, f.ID); err != nil {
		return fmt.Errorf("%w: record removal failed: %v", ErrPartialDelete, err)
	}

	return nil
}

func buildStoragePath(ownerID, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%s/%d-%s%s", ownerID, time.Now().UnixMilli(), randomSuffix(), ext)
}

func randomSuffix() string {
	buf := make([]byte, 4)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
