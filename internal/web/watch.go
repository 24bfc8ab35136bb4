package web

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"dropboard/internal/store"
)

// boardWatcher polls the board files and wakes subscribers when they change.
type boardWatcher struct {
	dir  string
	poll time.Duration

	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newBoardWatcher(s store.Store, poll time.Duration) *boardWatcher {
	return &boardWatcher{
		dir:  filepath.Clean(s.Dir),
		poll: poll,
		subs: map[chan struct{}]struct{}{},
	}
}

// subscribe returns a channel that receives one value right away (so the
// first render does not wait for a change) and one per change after that.
func (w *boardWatcher) subscribe() (ch chan struct{}, cancel func()) {
	ch = make(chan struct{}, 8)
	ch <- struct{}{}
	w.mu.Lock()
	w.subs[ch] = struct{}{}
	w.mu.Unlock()
	return ch, func() {
		w.mu.Lock()
		delete(w.subs, ch)
		w.mu.Unlock()
	}
}

func (w *boardWatcher) broadcast() {
	w.mu.Lock()
	for ch := range w.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	w.mu.Unlock()
}

// fingerprint summarizes the board database and its WAL. Saves go through
// the WAL first, so both are checked.
func (w *boardWatcher) fingerprint() string {
	var modNano, size int64
	for _, name := range []string{"board.sqlite", "board.sqlite-wal"} {
		st, err := os.Stat(filepath.Join(w.dir, name))
		if err != nil {
			continue
		}
		modNano = max(modNano, st.ModTime().UnixNano())
		size += st.Size()
	}
	if modNano == 0 && size == 0 {
		return ""
	}
	return strconv.FormatInt(modNano, 10) + ":" + strconv.FormatInt(size, 10)
}

func (w *boardWatcher) loop(ctx context.Context) {
	last := w.fingerprint()
	t := time.NewTicker(w.poll)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
		}
		if fp := w.fingerprint(); fp != last {
			last = fp
			w.broadcast()
		}
	}
}
