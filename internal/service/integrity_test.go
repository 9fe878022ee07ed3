package service_test

import (
	"testing"

	"scireda/backend/internal/model"
	"scireda/backend/internal/service"

	"github.com/stretchr/testify/require"
)

func folderContent(subFolders, notes int) model.FolderContent {
	content := model.FolderContent{Folder: model.Folder{ID: 1, Name: "Documents", NetworkID: 1}}
	for i := 0; i < subFolders; i++ {
		content.SubFolders = append(content.SubFolders, model.Folder{ID: int64(100 + i), NetworkID: 1, ParentID: int64Ptr(1)})
	}
	for i := 0; i < notes; i++ {
		content.Notes = append(content.Notes, model.Note{ID: int64(200 + i), NetworkID: 1, ParentID: int64Ptr(1)})
	}
	return content
}

func TestCanDeleteFolder_SubfoldersAlwaysBlock(t *testing.T) {
	for _, subFolders := range []int{1, 2, 10} {
		for _, notes := range []int{0, 1, 5} {
			for _, force := range []bool{false, true} {
				decision := service.CanDeleteFolder(folderContent(subFolders, notes), force)
				require.False(t, decision.Allowed)
				require.Equal(t, service.FolderHasSubfolders, decision.Reason)
			}
		}
	}
}

func TestCanDeleteFolder_NotesNeedForce(t *testing.T) {
	for _, notes := range []int{1, 3, 50} {
		decision := service.CanDeleteFolder(folderContent(0, notes), false)
		require.False(t, decision.Allowed)
		require.Equal(t, service.FolderHasNotesNoForce, decision.Reason)

		decision = service.CanDeleteFolder(folderContent(0, notes), true)
		require.True(t, decision.Allowed)
		require.Empty(t, decision.Reason)
	}
}

func TestCanDeleteFolder_EmptyFolder(t *testing.T) {
	for _, force := range []bool{false, true} {
		decision := service.CanDeleteFolder(folderContent(0, 0), force)
		require.True(t, decision.Allowed)
	}
}

func TestDeleteBlockReason_Message(t *testing.T) {
	require.Equal(t, "can't delete a folder that has subfolders", service.FolderHasSubfolders.Message())
	require.Contains(t, service.FolderHasNotesNoForce.Message(), "without force")

	err := &service.DeleteBlockedError{Reason: service.FolderHasSubfolders}
	require.ErrorIs(t, err, service.ErrDeleteBlocked)
	require.Equal(t, service.FolderHasSubfolders.Message(), err.Error())
}

func TestAuthorize(t *testing.T) {
	require.NoError(t, service.Authorize("alice", "alice"))
	require.ErrorIs(t, service.Authorize("bob", "alice"), service.ErrForbidden)
	require.ErrorIs(t, service.Authorize("", "alice"), service.ErrForbidden)
	require.ErrorIs(t, service.Authorize("", ""), service.ErrForbidden)
}

func TestValidationError(t *testing.T) {
	err := &service.ValidationError{Field: "name", Message: "must not be empty"}
	require.ErrorIs(t, err, service.ErrInvalid)
	require.Equal(t, "name: must not be empty", err.Error())
}
