package gallery

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// NeutralPlaceholder stands in when an image cannot be loaded.
const NeutralPlaceholder = "data:image/svg+xml,%3Csvg xmlns='http://www.w3.org/2000/svg' width='16' height='16'%3E%3Crect width='16' height='16' fill='%23d4d4d8'/%3E%3C/svg%3E"

const (
	placeholderWidth = 16
	placeholderBlur  = 1.5
)

type Placeholderer struct {
	client  *Client
	workers int
}

func NewPlaceholderer(client *Client, workers int) *Placeholderer {
	if workers <= 0 {
		workers = 1
	}
	return &Placeholderer{
		client:  client,
		workers: workers,
	}
}

// Apply fills Placeholder for every non-video item. Items are processed
// concurrently; the call returns once all of them are done. It never fails:
// an item that cannot be rendered gets NeutralPlaceholder.
func (p *Placeholderer) Apply(ctx context.Context, items []FileDescriptor) []FileDescriptor {
	out := make([]FileDescriptor, len(items))
	copy(out, items)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i := range out {
		if out[i].IsVideo() {
			continue
		}
		g.Go(func() error {
			dataURI, err := p.render(gctx, out[i].URI)
			if err != nil {
				slog.Debug("placeholder fallback",
					slog.String("name", out[i].Name),
					slog.String("error", err.Error()),
				)
				dataURI = NeutralPlaceholder
			}
			out[i].Placeholder = dataURI
			return nil
		})
	}
	g.Wait()

	return out
}

func (p *Placeholderer) render(ctx context.Context, uri string) (string, error) {
	resp, err := p.client.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	src, err := imaging.Decode(resp.Body)
	if err != nil {
		return "", fmt.Errorf("image decode error: %w", err)
	}

	small := imaging.Resize(src, placeholderWidth, 0, imaging.Box)
	small = imaging.Blur(small, placeholderBlur)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, small, imaging.JPEG, imaging.JPEGQuality(40)); err != nil {
		return "", fmt.Errorf("image encode error: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
