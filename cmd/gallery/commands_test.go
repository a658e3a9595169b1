package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ilkin0/mediagw/internal/config"
	"github.com/ilkin0/mediagw/internal/gallery"
	"github.com/ilkin0/mediagw/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memClipboard struct{ text string }

func (c *memClipboard) WriteAll(text string) error {
	c.text = text
	return nil
}

type memSink struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *memSink) Save(_ context.Context, name, _ string, r io.Reader, _ int64) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[name] = b
	return "mem://" + name, nil
}

func newTestApp(t *testing.T, stdin string) (*app, *testutil.FakeServer, *bytes.Buffer) {
	t.Helper()

	srv := testutil.NewFakeServer(t, nil)
	srv.SetHandler(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/objects/"):
			w.Write([]byte("bytes of " + strings.TrimPrefix(r.URL.Path, "/objects/")))
		case r.Method == http.MethodGet:
			testutil.JSON(http.StatusOK, `[`+
				`{"name":"a.jpg","contentType":"image/jpeg","uri":"`+srv.URL+`/objects/a.jpg","size":1024},`+
				`{"name":"b.png","contentType":"image/png","uri":"`+srv.URL+`/objects/b.png","size":3145728}]`)(w, r)
		case r.Method == http.MethodPost:
			testutil.JSON(http.StatusCreated, `{"url":"https://cdn.example/new.txt"}`)(w, r)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})

	out := new(bytes.Buffer)
	cfg := config.Gallery{
		GatewayURL:         srv.URL + "/api/files",
		DownloadDir:        t.TempDir(),
		PlaceholderWorkers: 2,
	}
	a := newApp(cfg, &http.Client{}, strings.NewReader(stdin), out)
	a.clipboard = &memClipboard{}
	return a, srv, out
}

func TestRun_UnknownCommand(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	assert.ErrorIs(t, a.run(context.Background(), "frobnicate", nil), errUsage)
}

func TestRun_List(t *testing.T) {
	a, _, out := newTestApp(t, "")

	require.NoError(t, a.run(context.Background(), "list", nil))

	assert.Contains(t, out.String(), "a.jpg")
	assert.Contains(t, out.String(), "0.00 MB")
	assert.Contains(t, out.String(), "3.00 MB")
}

func TestRun_Upload(t *testing.T) {
	a, srv, out := newTestApp(t, "")
	path := filepath.Join(t.TempDir(), "new.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	require.NoError(t, a.run(context.Background(), "upload", []string{"-type", "otp", "-compress", "-level", "high", path}))

	assert.Contains(t, out.String(), "https://cdn.example/new.txt")
	reqs := srv.Requests()
	require.NotEmpty(t, reqs)
	assert.Equal(t, "type=OTP&compress=true&level=HIGH", reqs[0].RawQuery)
}

func TestRun_UploadMissingArg(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	assert.ErrorIs(t, a.run(context.Background(), "upload", nil), errUsage)
}

func TestRun_Copy(t *testing.T) {
	a, srv, out := newTestApp(t, "")

	require.NoError(t, a.run(context.Background(), "copy", []string{"a.jpg"}))

	assert.Equal(t, srv.URL+"/objects/a.jpg", a.clipboard.(*memClipboard).text)
	assert.Contains(t, out.String(), "Link Copied")
}

func TestRun_QR(t *testing.T) {
	a, srv, out := newTestApp(t, "")

	require.NoError(t, a.run(context.Background(), "qr", []string{"b.png"}))
	assert.Contains(t, out.String(), srv.URL+"/objects/b.png")

	assert.Error(t, a.run(context.Background(), "qr", []string{"nope.png"}))
}

func TestRun_Download(t *testing.T) {
	a, _, out := newTestApp(t, "")
	dir := t.TempDir()

	require.NoError(t, a.run(context.Background(), "download", []string{"-o", dir, "a.jpg"}))

	got, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "bytes of a.jpg", string(got))
	assert.Contains(t, out.String(), "sha256:")
}

func TestRun_Delete(t *testing.T) {
	tests := []struct {
		name        string
		stdin       string
		args        []string
		wantDeletes int
		wantOutput  string
	}{
		{"declined", "n\n", []string{"a.jpg"}, 0, "Cancelled"},
		{"empty answer", "", []string{"a.jpg"}, 0, "Cancelled"},
		{"confirmed", "y\n", []string{"a.jpg"}, 1, "File Deleted"},
		{"skip prompt", "", []string{"-yes", "a.jpg"}, 1, "File Deleted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, srv, out := newTestApp(t, tt.stdin)

			require.NoError(t, a.run(context.Background(), "delete", tt.args))

			deletes := 0
			for _, r := range srv.Requests() {
				if r.Method == http.MethodDelete {
					deletes++
					assert.Equal(t, "/api/files/a.jpg", r.Path)
				}
			}
			assert.Equal(t, tt.wantDeletes, deletes)
			assert.Contains(t, out.String(), tt.wantOutput)
		})
	}
}

func TestRun_Mirror(t *testing.T) {
	a, _, out := newTestApp(t, "")
	sink := &memSink{objects: map[string][]byte{}}
	a.newMirror = func(context.Context) (gallery.Sink, error) { return sink, nil }

	require.NoError(t, a.run(context.Background(), "mirror", nil))

	assert.Equal(t, "bytes of a.jpg", string(sink.objects["a.jpg"]))
	assert.Equal(t, "bytes of b.png", string(sink.objects["b.png"]))
	assert.Contains(t, out.String(), "mem://a.jpg")
	assert.Contains(t, out.String(), "mem://b.png")
}
