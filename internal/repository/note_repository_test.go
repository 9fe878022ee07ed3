package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"scireda/backend/internal/model"
	"scireda/backend/internal/repository"
	"scireda/backend/internal/repository/testutil"

	"github.com/stretchr/testify/require"
)

func TestNoteRepository_CreateAndGet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "alice")
	networkID := testutil.SeedNetwork(t, db, "N", owner)
	folderID := testutil.SeedFolder(t, db, "F", networkID, nil)

	created, err := repo.Create(ctx, model.Note{Title: "N", Content: "# hello", NetworkID: networkID, ParentID: &folderID})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "N", fetched.Title)
	require.Equal(t, "# hello", fetched.Content)
	require.Equal(t, folderID, *fetched.ParentID)

	_, err = repo.GetByID(ctx, created.ID+1)
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestNoteRepository_EmptyContent(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "alice")
	networkID := testutil.SeedNetwork(t, db, "N", owner)

	created, err := repo.Create(ctx, model.Note{Title: "Blank", NetworkID: networkID})
	require.NoError(t, err)
	fetched, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.Empty(t, fetched.Content)
	require.Nil(t, fetched.ParentID)
}

func TestNoteRepository_Listing(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "alice")
	network1 := testutil.SeedNetwork(t, db, "N1", owner)
	network2 := testutil.SeedNetwork(t, db, "N2", owner)
	folderID := testutil.SeedFolder(t, db, "F", network1, nil)

	top := testutil.SeedNote(t, db, "Top", network1, nil)
	nested := testutil.SeedNote(t, db, "Nested", network1, &folderID)
	testutil.SeedNote(t, db, "Elsewhere", network2, nil)

	topLevel, err := repo.ListTopLevel(ctx, network1)
	require.NoError(t, err)
	require.Len(t, topLevel, 1)
	require.Equal(t, top, topLevel[0].ID)

	inFolder, err := repo.ListByParent(ctx, folderID)
	require.NoError(t, err)
	require.Len(t, inFolder, 1)
	require.Equal(t, nested, inFolder[0].ID)
}

func TestNoteRepository_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "alice")
	networkID := testutil.SeedNetwork(t, db, "N", owner)
	id := testutil.SeedNote(t, db, "Draft", networkID, nil)

	note, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	note.Title = "Final"
	note.Content = "done"
	updated, err := repo.Update(ctx, note)
	require.NoError(t, err)
	require.Equal(t, "Final", updated.Title)
	require.Equal(t, "done", updated.Content)
	require.False(t, updated.UpdatedAt.Before(note.UpdatedAt))

	require.NoError(t, repo.Delete(ctx, id))
	require.ErrorIs(t, repo.Delete(ctx, id), sql.ErrNoRows)
}

func TestNoteRepository_DeleteByParentAndNetwork(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNoteRepository(db)
	ctx := context.Background()

	owner := testutil.SeedUser(t, db, "alice")
	network1 := testutil.SeedNetwork(t, db, "N1", owner)
	network2 := testutil.SeedNetwork(t, db, "N2", owner)
	folderID := testutil.SeedFolder(t, db, "F", network1, nil)
	testutil.SeedNote(t, db, "A", network1, &folderID)
	testutil.SeedNote(t, db, "B", network1, &folderID)
	testutil.SeedNote(t, db, "C", network1, nil)
	testutil.SeedNote(t, db, "D", network2, nil)

	n, err := repo.DeleteByParent(ctx, folderID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	n, err = repo.DeleteByNetwork(ctx, network1)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)
	require.Equal(t, 1, testutil.Count(t, db, "notes", ""))
}
