package service

import "scireda/backend/internal/model"

// DeleteBlockReason names the integrity rule that refused a folder delete.
type DeleteBlockReason string

const (
	FolderHasSubfolders   DeleteBlockReason = "folder_has_subfolders"
	FolderHasNotesNoForce DeleteBlockReason = "folder_has_notes_no_force"
)

// Message is the human readable form shown to the user.
func (r DeleteBlockReason) Message() string {
	switch r {
	case FolderHasSubfolders:
		return "can't delete a folder that has subfolders"
	case FolderHasNotesNoForce:
		return "can't delete a folder that contains notes without force"
	default:
		return string(r)
	}
}

type DeleteDecision struct {
	Allowed bool
	Reason  DeleteBlockReason
}

// CanDeleteFolder applies the deletion rules to a folder and its direct
// children. First match wins:
//
//  1. any subfolder blocks the delete, force or not;
//  2. notes block the delete unless force is set;
//  3. anything else is allowed.
//
// Subfolders are never cascaded. An allowed forced delete removes the direct
// notes together with the folder.
func CanDeleteFolder(content model.FolderContent, force bool) DeleteDecision {
	if len(content.SubFolders) > 0 {
		return DeleteDecision{Allowed: false, Reason: FolderHasSubfolders}
	}
	if len(content.Notes) > 0 && !force {
		return DeleteDecision{Allowed: false, Reason: FolderHasNotesNoForce}
	}
	return DeleteDecision{Allowed: true}
}
