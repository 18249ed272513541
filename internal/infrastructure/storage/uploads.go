package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Upload categories, each a subdirectory of the uploads root.
const (
	CategoryTickets  = "tickets"
	CategoryProjects = "projects"
	CategoryBlog     = "blog"
)

var (
	// AttachmentExtensions are accepted on ticket attachments.
	AttachmentExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".pdf", ".doc", ".docx", ".txt", ".zip"}
	// ImageExtensions are accepted on project and blog images.
	ImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

var (
	ErrFileTooLarge      = errors.New("file too large")
	ErrFileTypeRejected  = errors.New("file type not allowed")
	ErrFileEmpty         = errors.New("file is empty")
	ErrContentMismatched = errors.New("file content does not match its extension")
)

const defaultMaxBytes = 10 * 1024 * 1024

// StoredFile describes a saved upload.
type StoredFile struct {
	FileName     string
	OriginalName string
	URL          string
	MimeType     string
	Size         int64
}

// FileStore writes uploads below a root directory served at a public prefix.
type FileStore struct {
	root     string
	prefix   string
	maxBytes int64
}

func NewFileStore(root, publicPrefix string, maxBytes int64) *FileStore {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	if publicPrefix == "" {
		publicPrefix = "/uploads"
	}
	return &FileStore{
		root:     root,
		prefix:   strings.TrimRight(publicPrefix, "/"),
		maxBytes: maxBytes,
	}
}

func (s *FileStore) Root() string { return s.root }

func (s *FileStore) MaxBytes() int64 { return s.maxBytes }

// Save validates fh against allowed and writes it as
// <category>/<category-prefix>-<uuid><ext>.
func (s *FileStore) Save(category string, fh *multipart.FileHeader, allowed []string) (*StoredFile, error) {
	if fh.Size > s.maxBytes {
		return nil, ErrFileTooLarge
	}
	if fh.Size == 0 {
		return nil, ErrFileEmpty
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !slices.Contains(allowed, ext) {
		return nil, fmt.Errorf("%w: %s", ErrFileTypeRejected, ext)
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	mtype, err := mimetype.DetectReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	if slices.Contains(ImageExtensions, ext) && !strings.HasPrefix(mtype.String(), "image/") {
		return nil, ErrContentMismatched
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s%s", strings.TrimSuffix(category, "s"), uuid.NewString(), ext)
	dst, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && written > s.maxBytes {
		err = ErrFileTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(dir, name))
		return nil, err
	}

	return &StoredFile{
		FileName:     name,
		OriginalName: filepath.Base(fh.Filename),
		URL:          path.Join(s.prefix, category, name),
		MimeType:     mtype.String(),
		Size:         written,
	}, nil
}

// Remove deletes the file behind a public URL produced by Save. URLs outside
// the store are ignored.
func (s *FileStore) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, s.prefix+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove upload: %w", err)
	}
	return nil
}
