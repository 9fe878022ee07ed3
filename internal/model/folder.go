package model

import "time"

type Folder struct {
	ID        int64
	Name      string
	NetworkID int64
	ParentID  *int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FolderContent is a folder together with its direct children. Subfolders are
// not expanded further.
type FolderContent struct {
	Folder     Folder
	Network    Network
	Notes      []Note
	SubFolders []Folder
}
