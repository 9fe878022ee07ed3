package client

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultTitleDelay   = 2 * time.Second
	DefaultContentDelay = 3 * time.Second
	defaultSaveTimeout  = 10 * time.Second
)

// NoteSaver persists note edits. *Client implements it.
type NoteSaver interface {
	UpdateNote(ctx context.Context, id string, update NoteUpdate) (Note, error)
}

// Autosaver debounces edits to one note. Every edit restarts a single quiet
// period (longer for content than for title); when it elapses all pending
// fields are saved together. Call Flush before switching to another note and
// Close when done.
type Autosaver struct {
	saver        NoteSaver
	noteID       string
	titleDelay   time.Duration
	contentDelay time.Duration
	saveTimeout  time.Duration
	onError      func(error)

	mu      sync.Mutex
	pending NoteUpdate
	timer   *time.Timer
	closed  bool
	lastErr error

	saveMu sync.Mutex // serializes saves so they reach the server in order
}

type AutosaveOption func(*Autosaver)

func WithDelays(title, content time.Duration) AutosaveOption {
	return func(a *Autosaver) {
		a.titleDelay = title
		a.contentDelay = content
	}
}

// WithErrorHandler is called when a background save fails. The edits stay
// pending and are retried by the next edit or Flush.
func WithErrorHandler(fn func(error)) AutosaveOption {
	return func(a *Autosaver) { a.onError = fn }
}

func NewAutosaver(saver NoteSaver, noteID string, opts ...AutosaveOption) *Autosaver {
	a := &Autosaver{
		saver:        saver,
		noteID:       noteID,
		titleDelay:   DefaultTitleDelay,
		contentDelay: DefaultContentDelay,
		saveTimeout:  defaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Autosaver) SetTitle(title string) {
	a.schedule(a.titleDelay, func(u *NoteUpdate) { u.Title = &title })
}

func (a *Autosaver) SetContent(content string) {
	a.schedule(a.contentDelay, func(u *NoteUpdate) { u.Content = &content })
}

func (a *Autosaver) schedule(delay time.Duration, apply func(*NoteUpdate)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	apply(&a.pending)
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(delay, a.fire)
}

func (a *Autosaver) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), a.saveTimeout)
	defer cancel()
	if err := a.save(ctx); err != nil && a.onError != nil {
		a.onError(err)
	}
}

// HasUnsavedChanges reports whether edits are waiting to be saved.
func (a *Autosaver) HasUnsavedChanges() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending.Title != nil || a.pending.Content != nil
}

// Err returns the error of the last save, or nil if it succeeded.
func (a *Autosaver) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}

// Flush cancels the pending timer and saves immediately.
func (a *Autosaver) Flush(ctx context.Context) error {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.mu.Unlock()
	return a.save(ctx)
}

// Close flushes pending edits; later edits are ignored.
func (a *Autosaver) Close(ctx context.Context) error {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()
	return a.Flush(ctx)
}

func (a *Autosaver) save(ctx context.Context) error {
	a.saveMu.Lock()
	defer a.saveMu.Unlock()

	a.mu.Lock()
	update := a.pending
	a.pending = NoteUpdate{}
	a.mu.Unlock()
	if update.Title == nil && update.Content == nil {
		return nil
	}

	_, err := a.saver.UpdateNote(ctx, a.noteID, update)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		// Newer edits made during the failed save win.
		if a.pending.Title == nil {
			a.pending.Title = update.Title
		}
		if a.pending.Content == nil {
			a.pending.Content = update.Content
		}
		a.lastErr = err
		return err
	}
	a.lastErr = nil
	return nil
}
