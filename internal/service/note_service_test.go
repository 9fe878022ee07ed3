package service_test

import (
	"context"
	"database/sql"
	"testing"

	"scireda/backend/internal/model"
	"scireda/backend/internal/repository/testutil"
	"scireda/backend/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNoteService_Create_ParentInOtherNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMockRepos(ctrl)
	svc := service.NewNoteService(m.tx, m.repos())
	ctx := context.Background()

	m.networks.EXPECT().GetByID(ctx, int64(1)).Return(model.Network{ID: 1, OwnerID: "alice"}, nil)
	m.folders.EXPECT().GetByID(ctx, int64(3)).Return(model.Folder{ID: 3, NetworkID: 2}, nil)

	_, err := svc.Create(ctx, "alice", service.NoteInput{Title: "Idea", NetworkID: 1, ParentID: int64Ptr(3)})
	require.ErrorIs(t, err, service.ErrMismatchedNetwork)
}

func TestNoteService_Create_EmptyContentAllowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMockRepos(ctrl)
	svc := service.NewNoteService(m.tx, m.repos())
	ctx := context.Background()

	m.networks.EXPECT().GetByID(ctx, int64(1)).Return(model.Network{ID: 1, OwnerID: "alice"}, nil)
	m.notes.EXPECT().
		Create(ctx, model.Note{Title: "Idea", NetworkID: 1}).
		Return(model.Note{ID: 9, Title: "Idea", NetworkID: 1}, nil)

	note, err := svc.Create(ctx, "alice", service.NoteInput{Title: " Idea ", NetworkID: 1})
	require.NoError(t, err)
	require.Equal(t, int64(9), note.ID)
	require.Empty(t, note.Content)
}

func TestNoteService_Create_EmptyTitle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMockRepos(ctrl)
	svc := service.NewNoteService(m.tx, m.repos())

	_, err := svc.Create(context.Background(), "alice", service.NoteInput{NetworkID: 1})
	var validation *service.ValidationError
	require.ErrorAs(t, err, &validation)
	require.Equal(t, "title", validation.Field)
}

func TestNoteService_Get_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	m := newMockRepos(ctrl)
	svc := service.NewNoteService(m.tx, m.repos())
	ctx := context.Background()

	m.notes.EXPECT().GetByID(ctx, int64(4)).Return(model.Note{}, sql.ErrNoRows)

	_, err := svc.Get(ctx, "alice", 4)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestNoteService_Lifecycle(t *testing.T) {
	store := newSQLiteStore(t)
	svc := service.NewNoteService(store.tx, store.repos)
	ctx := context.Background()
	owner, networkID, documents, work, _ := seedDocuments(t, store)

	note, err := svc.Create(ctx, owner, service.NoteInput{Title: "Draft", NetworkID: networkID, ParentID: int64Ptr(work)})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, note.ID, service.NotePatch{Content: stringPtr("# Heading")})
	require.NoError(t, err)
	require.Equal(t, "Draft", updated.Title)
	require.Equal(t, "# Heading", updated.Content)
	require.Equal(t, work, *updated.ParentID)

	moved, err := svc.Update(ctx, owner, note.ID, service.NotePatch{ParentID: int64Ptr(documents)})
	require.NoError(t, err)
	require.Equal(t, documents, *moved.ParentID)

	inFolder, err := svc.ListByFolder(ctx, owner, documents)
	require.NoError(t, err)
	require.Len(t, inFolder, 2)

	top, err := svc.Update(ctx, owner, note.ID, service.NotePatch{ClearParent: true})
	require.NoError(t, err)
	require.Nil(t, top.ParentID)

	topLevel, err := svc.ListTopLevel(ctx, owner, networkID)
	require.NoError(t, err)
	require.Equal(t, []int64{note.ID}, noteIDs(topLevel))

	require.NoError(t, svc.Delete(ctx, owner, note.ID))
	_, err = svc.Get(ctx, owner, note.ID)
	require.ErrorIs(t, err, service.ErrNotFound)
}

func TestNoteService_UpdateNetworkKeepsParentConsistent(t *testing.T) {
	store := newSQLiteStore(t)
	svc := service.NewNoteService(store.tx, store.repos)
	ctx := context.Background()
	owner, _, documents, _, note := seedDocuments(t, store)
	other := testutil.SeedNetwork(t, store.db, "Other", owner)

	_, err := svc.Update(ctx, owner, note, service.NotePatch{NetworkID: int64Ptr(other)})
	require.ErrorIs(t, err, service.ErrMismatchedNetwork)

	moved, err := svc.Update(ctx, owner, note, service.NotePatch{NetworkID: int64Ptr(other), ClearParent: true})
	require.NoError(t, err)
	require.Equal(t, other, moved.NetworkID)

	_, err = svc.Update(ctx, owner, note, service.NotePatch{ParentID: int64Ptr(documents)})
	require.ErrorIs(t, err, service.ErrMismatchedNetwork)

	_, err = svc.Update(ctx, owner, note, service.NotePatch{ParentID: int64Ptr(424242)})
	require.ErrorIs(t, err, service.ErrParentNotFound)
}

func TestNoteService_OtherUserCannotTouch(t *testing.T) {
	store := newSQLiteStore(t)
	svc := service.NewNoteService(store.tx, store.repos)
	ctx := context.Background()
	_, networkID, documents, _, note := seedDocuments(t, store)
	mallory := testutil.SeedUser(t, store.db, "mallory")

	_, err := svc.Get(ctx, mallory, note)
	require.ErrorIs(t, err, service.ErrForbidden)
	_, err = svc.Update(ctx, mallory, note, service.NotePatch{Title: stringPtr("pwned")})
	require.ErrorIs(t, err, service.ErrForbidden)
	require.ErrorIs(t, svc.Delete(ctx, mallory, note), service.ErrForbidden)
	_, err = svc.ListByFolder(ctx, mallory, documents)
	require.ErrorIs(t, err, service.ErrForbidden)
	_, err = svc.ListTopLevel(ctx, mallory, networkID)
	require.ErrorIs(t, err, service.ErrForbidden)

	require.Equal(t, 1, testutil.Count(t, store.db, "notes", "id = ? AND title = ?", note, "Reading list"))
}
