package client_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scireda/backend/pkg/client"
)

type recordingSaver struct {
	mu      sync.Mutex
	updates []client.NoteUpdate
	fail    error
}

func (s *recordingSaver) UpdateNote(ctx context.Context, id string, update client.NoteUpdate) (client.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return client.Note{}, s.fail
	}
	s.updates = append(s.updates, update)
	return client.Note{ID: id}, nil
}

func (s *recordingSaver) saved() []client.NoteUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.NoteUpdate(nil), s.updates...)
}

func (s *recordingSaver) setFail(err error) {
	s.mu.Lock()
	s.fail = err
	s.mu.Unlock()
}

func TestAutosaver_DebouncesEdits(t *testing.T) {
	saver := &recordingSaver{}
	a := client.NewAutosaver(saver, "42", client.WithDelays(20*time.Millisecond, 30*time.Millisecond))
	defer a.Close(context.Background())

	a.SetContent("h")
	a.SetContent("he")
	a.SetContent("hello")
	a.SetTitle("Greeting")
	require.True(t, a.HasUnsavedChanges())

	require.Eventually(t, func() bool { return len(saver.saved()) == 1 }, time.Second, 5*time.Millisecond)
	saved := saver.saved()[0]
	require.Equal(t, "hello", *saved.Content)
	require.Equal(t, "Greeting", *saved.Title)
	require.False(t, a.HasUnsavedChanges())

	time.Sleep(60 * time.Millisecond)
	require.Len(t, saver.saved(), 1)
}

func TestAutosaver_FlushSavesImmediately(t *testing.T) {
	saver := &recordingSaver{}
	a := client.NewAutosaver(saver, "42", client.WithDelays(time.Hour, time.Hour))

	a.SetTitle("Draft")
	require.Empty(t, saver.saved())

	require.NoError(t, a.Flush(context.Background()))
	require.Len(t, saver.saved(), 1)
	require.Nil(t, saver.saved()[0].Content)

	require.NoError(t, a.Flush(context.Background()))
	require.Len(t, saver.saved(), 1)
}

func TestAutosaver_RetainsFailedEdits(t *testing.T) {
	saver := &recordingSaver{}
	errCh := make(chan error, 1)
	a := client.NewAutosaver(saver, "42",
		client.WithDelays(10*time.Millisecond, 10*time.Millisecond),
		client.WithErrorHandler(func(err error) { errCh <- err }),
	)

	boom := errors.New("server unavailable")
	saver.setFail(boom)
	a.SetContent("important")

	select {
	case err := <-errCh:
		require.ErrorIs(t, err, boom)
	case <-time.After(time.Second):
		t.Fatal("background save did not run")
	}
	require.True(t, a.HasUnsavedChanges())
	require.ErrorIs(t, a.Err(), boom)

	saver.setFail(nil)
	require.NoError(t, a.Close(context.Background()))
	require.Len(t, saver.saved(), 1)
	require.Equal(t, "important", *saver.saved()[0].Content)
	require.NoError(t, a.Err())
}

func TestAutosaver_CloseIgnoresLaterEdits(t *testing.T) {
	saver := &recordingSaver{}
	a := client.NewAutosaver(saver, "42", client.WithDelays(time.Millisecond, time.Millisecond))

	require.NoError(t, a.Close(context.Background()))
	a.SetTitle("too late")
	time.Sleep(20 * time.Millisecond)
	require.Empty(t, saver.saved())
	require.False(t, a.HasUnsavedChanges())
}
