package service

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/moojpayam/api/internal/config"
	"github.com/moojpayam/api/internal/logger"

	"github.com/google/uuid"
)

// UploadedFile describes one stored image.
type UploadedFile struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UploadService stores dashboard images on local disk. Files are sniffed,
// size- and dimension-checked and renamed to random names so client names
// never reach the filesystem.
type UploadService struct {
	dir          string
	maxSize      int64
	allowedTypes map[string]bool
	allowedExts  map[string]bool
	maxWidth     int
	maxHeight    int
}

// NewUploadService creates the upload service and its storage directory.
func NewUploadService(dir string, cfg config.UploadConfig) (*UploadService, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create dir: %w", err)
	}

	types := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		types[strings.ToLower(strings.TrimSpace(t))] = true
	}
	exts := make(map[string]bool, len(cfg.AllowedExtensions))
	for _, e := range cfg.AllowedExtensions {
		exts[strings.ToLower(strings.TrimSpace(e))] = true
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 5 << 20
	}
	return &UploadService{
		dir:          dir,
		maxSize:      maxSize,
		allowedTypes: types,
		allowedExts:  exts,
		maxWidth:     cfg.MaxWidth,
		maxHeight:    cfg.MaxHeight,
	}, nil
}

// Dir returns the storage directory for static serving.
func (s *UploadService) Dir() string {
	return s.dir
}

// Save validates and stores one uploaded image.
func (s *UploadService) Save(header *multipart.FileHeader) (*UploadedFile, error) {
	if header.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if len(s.allowedExts) > 0 && !s.allowedExts[ext] {
		return nil, ErrUnsupportedMIME
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("upload: open: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("upload: read: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, ErrFileTooLarge
	}

	// Trust the bytes, not the declared Content-Type.
	detected := strings.ToLower(strings.Split(http.DetectContentType(data), ";")[0])
	if !strings.HasPrefix(detected, "image/") {
		return nil, ErrUnsupportedMIME
	}
	if len(s.allowedTypes) > 0 && !s.allowedTypes[detected] {
		return nil, ErrUnsupportedMIME
	}

	if s.maxWidth > 0 || s.maxHeight > 0 {
		width, height, err := imageDimensions(data, detected)
		if err != nil {
			return nil, ErrUnsupportedMIME
		}
		if (s.maxWidth > 0 && width > s.maxWidth) || (s.maxHeight > 0 && height > s.maxHeight) {
			return nil, fmt.Errorf("%w: %dx%d exceeds limits", ErrInvalidInput, width, height)
		}
	}

	// Files land under blog/YYYY/MM so the directory stays browsable as
	// the library grows.
	now := time.Now()
	relDir := filepath.Join("blog", now.Format("2006"), now.Format("01"))
	if err := os.MkdirAll(filepath.Join(s.dir, relDir), 0o755); err != nil {
		return nil, fmt.Errorf("upload: create dir: %w", err)
	}

	name := uuid.NewString() + ext
	relPath := filepath.Join(relDir, name)
	if err := os.WriteFile(filepath.Join(s.dir, relPath), data, 0o644); err != nil {
		return nil, fmt.Errorf("upload: write: %w", err)
	}

	urlPath := filepath.ToSlash(relPath)
	logger.Infow("image_uploaded", "name", urlPath, "size", len(data), "mime", detected)
	return &UploadedFile{
		Name:      urlPath,
		URL:       "/uploads/" + urlPath,
		Size:      int64(len(data)),
		UpdatedAt: now,
	}, nil
}

// List walks the storage tree and returns images, newest first.
func (s *UploadService) List() ([]UploadedFile, error) {
	var files []UploadedFile
	err := filepath.WalkDir(s.dir, func(path string, entry os.DirEntry, err error) error {
		if err != nil || entry.IsDir() {
			return err
		}
		info, err := entry.Info()
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			return nil
		}
		urlPath := filepath.ToSlash(rel)
		files = append(files, UploadedFile{
			Name:      urlPath,
			URL:       "/uploads/" + urlPath,
			Size:      info.Size(),
			UpdatedAt: info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upload: walk dir: %w", err)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UpdatedAt.After(files[j].UpdatedAt)
	})
	return files, nil
}

// Delete removes a stored image by its relative name. The cleaned path must
// stay inside the upload directory.
func (s *UploadService) Delete(name string) error {
	rel := filepath.Clean(strings.TrimSpace(filepath.FromSlash(name)))
	if rel == "" || rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return fmt.Errorf("%w: filename", ErrInvalidInput)
	}
	path := filepath.Join(s.dir, rel)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("upload: stat: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("upload: remove: %w", err)
	}
	logger.Infow("image_deleted", "name", name)
	return nil
}

// imageDimensions reads the pixel size without decoding the full image.
// WebP needs a hand parser because image.DecodeConfig has no stdlib codec
// for it.
func imageDimensions(data []byte, mimeType string) (int, int, error) {
	if mimeType == "image/webp" {
		return webpDimensions(data)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// webpDimensions parses the VP8/VP8L/VP8X chunk headers of a RIFF container.
func webpDimensions(data []byte) (int, int, error) {
	if len(data) < 30 || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WEBP" {
		return 0, 0, fmt.Errorf("not a webp file")
	}
	switch string(data[12:16]) {
	case "VP8 ":
		// Lossy: 14-bit dimensions at offset 26.
		w := int(binary.LittleEndian.Uint16(data[26:28])) & 0x3FFF
		h := int(binary.LittleEndian.Uint16(data[28:30])) & 0x3FFF
		return w, h, nil
	case "VP8L":
		// Lossless: 14-bit dimensions minus one, bit packed after the
		// 0x2F signature byte.
		if data[20] != 0x2F {
			return 0, 0, fmt.Errorf("bad vp8l signature")
		}
		bits := binary.LittleEndian.Uint32(data[21:25])
		w := int(bits&0x3FFF) + 1
		h := int((bits>>14)&0x3FFF) + 1
		return w, h, nil
	case "VP8X":
		// Extended: 24-bit dimensions minus one at offset 24.
		w := int(uint32(data[24])|uint32(data[25])<<8|uint32(data[26])<<16) + 1
		h := int(uint32(data[27])|uint32(data[28])<<8|uint32(data[29])<<16) + 1
		return w, h, nil
	}
	return 0, 0, fmt.Errorf("unknown webp variant")
}
