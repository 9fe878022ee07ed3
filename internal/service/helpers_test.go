package service_test

import (
	"context"
	"database/sql"
	"testing"

	"go.uber.org/mock/gomock"

	"scireda/backend/internal/repository"
	"scireda/backend/internal/repository/mock"
	"scireda/backend/internal/repository/testutil"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func stringPtr(s string) *string {
	return &s
}

type mockRepos struct {
	networks *mock.MockNetworkRepository
	folders  *mock.MockFolderRepository
	notes    *mock.MockNoteRepository
	tx       *mock.MockTransactor
}

func (m mockRepos) repos() repository.Repositories {
	return repository.Repositories{Networks: m.networks, Folders: m.folders, Notes: m.notes}
}

// newMockRepos returns mocks where WithinTx simply runs fn against the same
// mocked repositories.
func newMockRepos(ctrl *gomock.Controller) mockRepos {
	m := mockRepos{
		networks: mock.NewMockNetworkRepository(ctrl),
		folders:  mock.NewMockFolderRepository(ctrl),
		notes:    mock.NewMockNoteRepository(ctrl),
		tx:       mock.NewMockTransactor(ctrl),
	}
	m.tx.EXPECT().WithinTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, fn func(repository.Repositories) error) error {
			return fn(m.repos())
		},
	).AnyTimes()
	return m
}

type sqliteStore struct {
	db    *sql.DB
	tx    repository.Transactor
	repos repository.Repositories
}

func newSQLiteStore(t *testing.T) sqliteStore {
	t.Helper()
	db := testutil.NewTestDB(t)
	return sqliteStore{
		db: db,
		tx: repository.NewTransactor(db),
		repos: repository.Repositories{
			Networks: repository.NewNetworkRepository(db),
			Folders:  repository.NewFolderRepository(db),
			Notes:    repository.NewNoteRepository(db),
		},
	}
}
