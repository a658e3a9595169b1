package gallery

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ilkin0/mediagw/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestSlot(t *testing.T, handler http.HandlerFunc) (*UploadSlot, *testutil.FakeServer, *noticeRecorder) {
	t.Helper()

	srv := testutil.NewFakeServer(t, handler)
	notices := &noticeRecorder{}
	client := NewClient(srv.URL+"/api/files", nil)
	g := New(client, WithNotifier(notices), WithClipboard(&fakeClipboard{}))
	return NewUploadSlot(client, g, notices), srv, notices
}

func uploadOK(uri string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			testutil.JSON(http.StatusCreated, `{"data":{"uri":"`+uri+`"}}`)(w, r)
			return
		}
		testutil.JSON(http.StatusOK, `[]`)(w, r)
	}
}

func TestUploadSlot_Select(t *testing.T) {
	slot, _, _ := newTestSlot(t, nil)
	assert.Equal(t, SlotEmpty, slot.State())

	t.Run("image pre-enables compression", func(t *testing.T) {
		require.NoError(t, slot.Select(writeTempFile(t, "pic.png", pngBytes(t, 4, 4))))

		assert.Equal(t, SlotSelected, slot.State())
		assert.Equal(t, "image/png", slot.ContentType())
		assert.True(t, slot.Options().Compress)
	})

	t.Run("non-image leaves compression off", func(t *testing.T) {
		require.NoError(t, slot.Select(writeTempFile(t, "notes.txt", []byte("plain text notes"))))

		assert.Equal(t, SlotSelected, slot.State())
		assert.True(t, strings.HasPrefix(slot.ContentType(), "text/plain"))
		assert.False(t, slot.Options().Compress)
	})

	t.Run("missing file", func(t *testing.T) {
		err := slot.Select(filepath.Join(t.TempDir(), "nope.png"))
		assert.Error(t, err)
	})
}

func TestUploadSlot_ConfirmSuccess(t *testing.T) {
	slot, srv, notices := newTestSlot(t, uploadOK("https://cdn.example/pic.png"))
	data := pngBytes(t, 8, 8)
	require.NoError(t, slot.Select(writeTempFile(t, "pic.png", data)))
	require.NoError(t, slot.SetOptions(UploadOptions{Category: CategoryBanner, Compress: true, Level: LevelLow}))

	fileURL, err := slot.Confirm(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example/pic.png", fileURL)
	assert.Equal(t, fileURL, slot.ResultURL())
	assert.Equal(t, SlotUploaded, slot.State())
	assert.Empty(t, notices.destructive())

	reqs := srv.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "type=BANNER&compress=true&level=LOW", reqs[0].RawQuery)
	assert.Contains(t, string(reqs[0].Body), string(data))
	assert.Equal(t, http.MethodGet, reqs[1].Method, "listing is refetched after upload")

	_, err = slot.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrNothingSelected)
}

func TestUploadSlot_ConfirmFailureAllowsRetry(t *testing.T) {
	slot, srv, notices := newTestSlot(t, testutil.JSON(http.StatusInternalServerError, `{"error":"Failed to upload file"}`))
	data := []byte("retry me please")
	require.NoError(t, slot.Select(writeTempFile(t, "retry.txt", data)))

	_, err := slot.Confirm(context.Background())
	require.Error(t, err)
	assert.Equal(t, SlotSelected, slot.State())
	require.Len(t, notices.destructive(), 1)
	assert.Equal(t, "Upload failed", notices.destructive()[0].Title)

	srv.SetHandler(uploadOK("https://cdn.example/retry.txt"))

	fileURL, err := slot.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/retry.txt", fileURL)

	reqs := srv.Requests()
	assert.Contains(t, string(reqs[1].Body), string(data), "retry sends the whole file again")
}

func TestUploadSlot_NoURLInResponse(t *testing.T) {
	slot, _, notices := newTestSlot(t, testutil.JSON(http.StatusOK, `{"status":"ok"}`))
	require.NoError(t, slot.Select(writeTempFile(t, "a.txt", []byte("a"))))

	_, err := slot.Confirm(context.Background())

	assert.ErrorIs(t, err, ErrNoUploadURL)
	assert.Equal(t, SlotSelected, slot.State())
	assert.Len(t, notices.destructive(), 1)
}

func TestUploadSlot_RejectsWhileUploading(t *testing.T) {
	release := make(chan struct{})
	slot, _, _ := newTestSlot(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			<-release
		}
		uploadOK("https://cdn.example/slow.txt")(w, r)
	})
	require.NoError(t, slot.Select(writeTempFile(t, "slow.txt", []byte("slow"))))

	done := make(chan error, 1)
	go func() {
		_, err := slot.Confirm(context.Background())
		done <- err
	}()

	assert.Eventually(t, func() bool {
		return slot.State() == SlotUploading
	}, time.Second, 5*time.Millisecond)

	_, err := slot.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrUploadInProgress)
	assert.ErrorIs(t, slot.Select(writeTempFile(t, "other.txt", []byte("x"))), ErrUploadInProgress)
	assert.ErrorIs(t, slot.Clear(), ErrUploadInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, SlotUploaded, slot.State())
}

func TestUploadSlot_ClearAndReselect(t *testing.T) {
	slot, _, _ := newTestSlot(t, uploadOK("https://cdn.example/a.txt"))
	require.NoError(t, slot.Select(writeTempFile(t, "a.txt", []byte("a"))))
	_, err := slot.Confirm(context.Background())
	require.NoError(t, err)

	require.NoError(t, slot.Select(writeTempFile(t, "b.txt", []byte("b"))))
	assert.Equal(t, SlotSelected, slot.State())
	assert.Empty(t, slot.ResultURL(), "reselect resets the previous result")

	require.NoError(t, slot.Clear())
	assert.Equal(t, SlotEmpty, slot.State())
	assert.Equal(t, "empty", slot.State().String())
}

func TestUploadSlot_SetOptionsValidates(t *testing.T) {
	slot, _, _ := newTestSlot(t, nil)
	assert.Error(t, slot.SetOptions(UploadOptions{Category: "NOPE"}))
}
