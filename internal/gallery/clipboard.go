package gallery

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

const CopiedIndicatorDuration = 2 * time.Second

type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// CopyTracker remembers which item was copied last and forgets it after
// the indicator duration. Copying another item replaces the indicator.
type CopyTracker struct {
	mu       sync.Mutex
	duration time.Duration
	key      string
	gen      uint64
	timer    *time.Timer
}

func NewCopyTracker(d time.Duration) *CopyTracker {
	return &CopyTracker{duration: d}
}

func (t *CopyTracker) Mark(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	t.gen++
	gen := t.gen
	t.key = key
	t.timer = time.AfterFunc(t.duration, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.gen == gen {
			t.key = ""
		}
	})
}

func (t *CopyTracker) IsCopied(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return key != "" && t.key == key
}
