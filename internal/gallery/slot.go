package gallery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

var (
	ErrNothingSelected  = errors.New("no file selected")
	ErrUploadInProgress = errors.New("upload already in progress")
)

type SlotState int

const (
	SlotEmpty SlotState = iota
	SlotSelected
	SlotUploading
	SlotUploaded
)

func (s SlotState) String() string {
	switch s {
	case SlotEmpty:
		return "empty"
	case SlotSelected:
		return "selected"
	case SlotUploading:
		return "uploading"
	case SlotUploaded:
		return "uploaded"
	default:
		return "unknown"
	}
}

// UploadSlot holds at most one pending file. The open file handle is the
// preview resource and is released on clear, reselect or after upload.
type UploadSlot struct {
	client   *Client
	gallery  *Gallery
	notifier Notifier

	mu          sync.Mutex
	state       SlotState
	file        *os.File
	filename    string
	contentType string
	options     UploadOptions
	resultURL   string
}

func NewUploadSlot(client *Client, gallery *Gallery, notifier Notifier) *UploadSlot {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &UploadSlot{
		client:   client,
		gallery:  gallery,
		notifier: notifier,
	}
}

func (s *UploadSlot) Select(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SlotUploading {
		return ErrUploadInProgress
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to detect content type: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return fmt.Errorf("failed to rewind %s: %w", path, err)
	}

	s.releaseLocked()
	s.file = f
	s.filename = filepath.Base(path)
	s.contentType = mtype.String()
	s.resultURL = ""
	s.options = UploadOptions{
		Category: CategoryGeneral,
		Compress: IsImage(s.contentType),
		Level:    LevelMedium,
	}
	s.state = SlotSelected
	return nil
}

func (s *UploadSlot) SetOptions(opts UploadOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SlotUploading {
		return ErrUploadInProgress
	}
	s.options = opts
	return nil
}

// Confirm uploads the selected file. On failure the slot returns to
// selected so the user can retry.
func (s *UploadSlot) Confirm(ctx context.Context) (string, error) {
	s.mu.Lock()
	switch s.state {
	case SlotUploading:
		s.mu.Unlock()
		return "", ErrUploadInProgress
	case SlotSelected:
	default:
		s.mu.Unlock()
		return "", ErrNothingSelected
	}
	s.state = SlotUploading
	req := UploadRequest{
		Filename:    s.filename,
		ContentType: s.contentType,
		Body:        s.file,
		Options:     s.options,
	}
	file := s.file
	s.mu.Unlock()

	fileURL, err := s.client.Upload(ctx, req)
	if err != nil {
		s.mu.Lock()
		if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
			slog.Warn("failed to rewind file after upload error", slog.String("error", seekErr.Error()))
		}
		s.state = SlotSelected
		s.mu.Unlock()

		slog.Error("upload failed",
			slog.String("filename", req.Filename),
			slog.String("error", err.Error()),
		)
		s.notifier.Notify(Notice{
			Title:       "Upload failed",
			Description: "There was an error uploading your file. Please try again.",
			Destructive: true,
		})
		return "", err
	}

	s.mu.Lock()
	s.releaseLocked()
	s.resultURL = fileURL
	s.state = SlotUploaded
	s.mu.Unlock()

	s.notifier.Notify(Notice{
		Title:       "Upload successful",
		Description: "Your file has been uploaded successfully.",
	})

	if s.gallery != nil {
		// listing failures are already surfaced by Refresh
		_ = s.gallery.Refresh(ctx)
	}
	return fileURL, nil
}

func (s *UploadSlot) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == SlotUploading {
		return ErrUploadInProgress
	}
	s.releaseLocked()
	s.filename = ""
	s.contentType = ""
	s.options = UploadOptions{}
	s.resultURL = ""
	s.state = SlotEmpty
	return nil
}

func (s *UploadSlot) State() SlotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *UploadSlot) ResultURL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resultURL
}

func (s *UploadSlot) Options() UploadOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.options
}

func (s *UploadSlot) ContentType() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contentType
}

func (s *UploadSlot) releaseLocked() {
	if s.file == nil {
		return
	}
	if err := s.file.Close(); err != nil {
		slog.Warn("failed to release selected file", slog.String("error", err.Error()))
	}
	s.file = nil
}
