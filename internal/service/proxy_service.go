package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/ilkin0/mediagw/internal/logger"
	"github.com/ilkin0/mediagw/internal/upstream"
)

var ErrFilenameRequired = errors.New("filename required")

var deleteFailedBody = json.RawMessage(`{"error":"Delete failed"}`)

// Result is a relayed upstream answer. A nil Body means no content.
type Result struct {
	Status int
	Body   json.RawMessage
}

type ProxyService struct {
	upstream *upstream.Client
}

func NewProxyService(client *upstream.Client) *ProxyService {
	return &ProxyService{
		upstream: client,
	}
}

func (s *ProxyService) Upstream() *upstream.Client {
	return s.upstream
}

func (s *ProxyService) List(ctx context.Context, segments []string, params []upstream.QueryParam) (Result, error) {
	log := logger.FromContext(ctx)

	resp, err := s.upstream.Get(ctx, segments, params)
	if err != nil {
		return Result{}, fmt.Errorf("failed to list files: %w", err)
	}

	body, err := resp.JSON()
	if err != nil {
		return Result{}, fmt.Errorf("failed to list files: %w", err)
	}

	log.Debug("upstream list relayed",
		slog.Int("upstream_status", resp.Status),
		slog.Int("segments", len(segments)),
	)

	return Result{Status: resp.Status, Body: body}, nil
}

func (s *ProxyService) Create(ctx context.Context, params []upstream.QueryParam, contentType string, body io.Reader, contentLength int64) (Result, error) {
	log := logger.FromContext(ctx)

	resp, err := s.upstream.Post(ctx, params, contentType, body, contentLength)
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload file: %w", err)
	}

	payload, err := resp.JSON()
	if err != nil {
		return Result{}, fmt.Errorf("failed to upload file: %w", err)
	}

	log.Info("upstream upload relayed",
		slog.Int("upstream_status", resp.Status),
	)

	return Result{Status: resp.Status, Body: payload}, nil
}

// Delete answers 204 on any upstream success. On upstream failure it relays
// the upstream JSON, or a generic error body when there is none.
func (s *ProxyService) Delete(ctx context.Context, segments []string) (Result, error) {
	if len(segments) == 0 {
		return Result{}, ErrFilenameRequired
	}
	log := logger.FromContext(ctx)

	resp, err := s.upstream.Delete(ctx, segments)
	if err != nil {
		return Result{}, fmt.Errorf("failed to delete file: %w", err)
	}

	if resp.OK() {
		log.Info("upstream delete succeeded",
			slog.Int("upstream_status", resp.Status),
		)
		return Result{Status: http.StatusNoContent}, nil
	}

	body, err := resp.JSON()
	if err != nil {
		body = deleteFailedBody
	}

	log.Warn("upstream delete rejected",
		slog.Int("upstream_status", resp.Status),
	)

	return Result{Status: resp.Status, Body: body}, nil
}
