package client_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"scireda/backend/pkg/client"
)

type fakeLoader struct {
	folders map[string]client.FolderContent
	fetched []string
	err     error
}

func (l *fakeLoader) Folder(ctx context.Context, id string) (client.FolderContent, error) {
	l.fetched = append(l.fetched, id)
	if l.err != nil {
		return client.FolderContent{}, l.err
	}
	content, ok := l.folders[id]
	if !ok {
		return client.FolderContent{}, &client.APIError{StatusCode: 404, Message: "resource not found"}
	}
	return content, nil
}

func ptr(s string) *string { return &s }

// Documents -> Work -> Deep, Documents holds "Reading list".
func documentsTree() *fakeLoader {
	documents := client.Folder{ID: "1", Name: "Documents"}
	work := client.Folder{ID: "2", Name: "Work", ParentID: ptr("1")}
	deep := client.Folder{ID: "3", Name: "Deep", ParentID: ptr("2")}
	return &fakeLoader{folders: map[string]client.FolderContent{
		"1": {Folder: documents, SubFolders: []client.Folder{work}, Notes: []client.Note{{ID: "10", Title: "Reading list"}}},
		"2": {Folder: work, SubFolders: []client.Folder{deep}},
		"3": {Folder: deep, Notes: []client.Note{{ID: "11", Title: "Buried"}}},
	}}
}

func render(t *testing.T, e *client.Expander, roots []client.Folder) []string {
	t.Helper()
	var rows []string
	for node, err := range e.Walk(context.Background(), roots) {
		require.NoError(t, err)
		switch node.Kind {
		case client.FolderNode:
			rows = append(rows, fmt.Sprintf("%d folder %s", node.Depth, node.Folder.Name))
		case client.NoteNode:
			rows = append(rows, fmt.Sprintf("%d note %s", node.Depth, node.Note.Title))
		}
	}
	return rows
}

func TestExpander_WalkOnlyFetchesExpanded(t *testing.T) {
	loader := documentsTree()
	e := client.NewExpander(loader)
	roots := []client.Folder{loader.folders["1"].Folder}

	require.Equal(t, []string{"0 folder Documents"}, render(t, e, roots))
	require.Empty(t, loader.fetched)

	_, err := e.Expand(context.Background(), "1")
	require.NoError(t, err)
	require.Equal(t, []string{
		"0 folder Documents",
		"1 folder Work",
		"1 note Reading list",
	}, render(t, e, roots))
	require.Equal(t, []string{"1"}, loader.fetched)

	_, err = e.Expand(context.Background(), "2")
	require.NoError(t, err)
	require.Equal(t, []string{
		"0 folder Documents",
		"1 folder Work",
		"2 folder Deep",
		"1 note Reading list",
	}, render(t, e, roots))
	require.Equal(t, []string{"1", "2"}, loader.fetched)
}

func TestExpander_CollapseForgetsContent(t *testing.T) {
	loader := documentsTree()
	e := client.NewExpander(loader)
	ctx := context.Background()

	_, err := e.Expand(ctx, "1")
	require.NoError(t, err)
	_, err = e.Expand(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, loader.fetched)

	e.Collapse("1")
	require.False(t, e.IsExpanded("1"))
	_, err = e.Expand(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, []string{"1", "1"}, loader.fetched)

	e.Invalidate("1")
	require.True(t, e.IsExpanded("1"))
	render(t, e, []client.Folder{loader.folders["1"].Folder})
	require.Equal(t, []string{"1", "1", "1"}, loader.fetched)
}

func TestExpander_SeedAvoidsFetch(t *testing.T) {
	loader := documentsTree()
	e := client.NewExpander(loader)

	e.Seed(loader.folders["1"])
	_, err := e.Expand(context.Background(), "1")
	require.NoError(t, err)
	require.Empty(t, loader.fetched)
}

func TestExpander_WalkStopsEarlyAndOnError(t *testing.T) {
	loader := documentsTree()
	e := client.NewExpander(loader)
	_, err := e.Expand(context.Background(), "1")
	require.NoError(t, err)

	var seen int
	for range e.Walk(context.Background(), []client.Folder{loader.folders["1"].Folder}) {
		seen++
		if seen == 2 {
			break
		}
	}
	require.Equal(t, 2, seen)

	_, err = e.Expand(context.Background(), "2")
	require.NoError(t, err)
	e.Invalidate("2")
	loader.err = errors.New("connection reset")

	var walkErr error
	for _, err := range e.Walk(context.Background(), []client.Folder{loader.folders["1"].Folder}) {
		if err != nil {
			walkErr = err
		}
	}
	require.ErrorIs(t, walkErr, loader.err)
}

func TestExpander_ExpandMissingFolder(t *testing.T) {
	e := client.NewExpander(documentsTree())
	_, err := e.Expand(context.Background(), "404")
	require.True(t, client.IsNotFound(err))
	require.False(t, e.IsExpanded("404"))
}
