package gallery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ilkin0/mediagw/internal/crypto"
)

var (
	ErrDeleteCancelled = errors.New("delete cancelled")
)

// Confirmer asks the user before destructive actions.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }

type DownloadResult struct {
	Location string
	SHA256   string
	Bytes    int64
}

// Gallery holds the current listing and drives the list, copy, download
// and delete flows.
type Gallery struct {
	client       *Client
	placeholders *Placeholderer
	clipboard    Clipboard
	notifier     Notifier
	copies       *CopyTracker

	mu      sync.RWMutex
	items   []FileDescriptor
	loading bool
}

type Option func(*Gallery)

// WithPlaceholders enables the placeholder pass on refresh.
func WithPlaceholders(p *Placeholderer) Option {
	return func(g *Gallery) { g.placeholders = p }
}

func WithClipboard(c Clipboard) Option {
	return func(g *Gallery) { g.clipboard = c }
}

func WithNotifier(n Notifier) Option {
	return func(g *Gallery) { g.notifier = n }
}

func WithCopyTracker(t *CopyTracker) Option {
	return func(g *Gallery) { g.copies = t }
}

func New(client *Client, opts ...Option) *Gallery {
	g := &Gallery{
		client:    client,
		clipboard: SystemClipboard{},
		notifier:  LogNotifier{},
		copies:    NewCopyTracker(CopiedIndicatorDuration),
		items:     []FileDescriptor{},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Refresh reloads the listing. A failed fetch leaves an empty listing and
// emits a notice; the error is still returned to the caller.
func (g *Gallery) Refresh(ctx context.Context) error {
	g.mu.Lock()
	g.loading = true
	g.mu.Unlock()

	items, err := g.client.List(ctx)
	if err != nil {
		slog.Error("failed to fetch listing", slog.String("error", err.Error()))
		g.notifier.Notify(Notice{
			Title:       "Error",
			Description: "Failed to fetch files",
			Destructive: true,
		})
		items = []FileDescriptor{}
	} else if g.placeholders != nil {
		items = g.placeholders.Apply(ctx, items)
	}

	g.mu.Lock()
	g.items = items
	g.loading = false
	g.mu.Unlock()

	return err
}

// Items returns a copy of the current listing.
func (g *Gallery) Items() []FileDescriptor {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]FileDescriptor, len(g.items))
	copy(out, g.items)
	return out
}

func (g *Gallery) Loading() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.loading
}

func (g *Gallery) Find(name string) (FileDescriptor, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, item := range g.items {
		if item.Name == name {
			return item, true
		}
	}
	return FileDescriptor{}, false
}

func (g *Gallery) CopyLink(key, uri string) error {
	if err := g.clipboard.WriteAll(uri); err != nil {
		g.notifier.Notify(Notice{
			Title:       "Error",
			Description: "Failed to copy link",
			Destructive: true,
		})
		return fmt.Errorf("failed to write clipboard: %w", err)
	}

	g.copies.Mark(key)
	g.notifier.Notify(Notice{
		Title:       "Link Copied",
		Description: "File link copied to clipboard",
	})
	return nil
}

func (g *Gallery) IsCopied(key string) bool {
	return g.copies.IsCopied(key)
}

// Download streams the item's bytes into sink under its original name.
func (g *Gallery) Download(ctx context.Context, item FileDescriptor, sink Sink) (DownloadResult, error) {
	result, err := g.download(ctx, item, sink)
	if err != nil {
		slog.Error("download failed",
			slog.String("name", item.Name),
			slog.String("error", err.Error()),
		)
		g.notifier.Notify(Notice{
			Title:       "Error",
			Description: "Failed to download file",
			Destructive: true,
		})
		return DownloadResult{}, err
	}
	return result, nil
}

func (g *Gallery) download(ctx context.Context, item FileDescriptor, sink Sink) (DownloadResult, error) {
	resp, err := g.client.Fetch(ctx, item.URI)
	if err != nil {
		return DownloadResult{}, err
	}
	defer resp.Body.Close()

	contentType := item.ContentType
	if contentType == "" {
		contentType = resp.Header.Get("Content-Type")
	}

	digest := crypto.NewDigestReader(resp.Body)
	location, err := sink.Save(ctx, item.Name, contentType, digest, resp.ContentLength)
	if err != nil {
		return DownloadResult{}, err
	}

	return DownloadResult{
		Location: location,
		SHA256:   digest.Sum(),
		Bytes:    digest.BytesRead(),
	}, nil
}

// Delete removes name after confirmation. The listing only changes through
// the refresh that follows a successful delete.
func (g *Gallery) Delete(ctx context.Context, name string, confirmer Confirmer) error {
	if confirmer == nil || !confirmer.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete %s?", name)) {
		return ErrDeleteCancelled
	}

	if err := g.client.Delete(ctx, name); err != nil {
		slog.Error("delete failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
		g.notifier.Notify(Notice{
			Title:       "Error",
			Description: "Failed to delete file",
			Destructive: true,
		})
		return err
	}

	g.notifier.Notify(Notice{
		Title:       "File Deleted",
		Description: fmt.Sprintf("%s has been deleted", name),
	})

	// the delete stands even when the listing cannot be reloaded
	if err := g.Refresh(ctx); err != nil {
		slog.Warn("listing refresh after delete failed",
			slog.String("name", name),
			slog.String("error", err.Error()),
		)
	}
	return nil
}
