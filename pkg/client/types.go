package client

import (
	"errors"
	"fmt"
	"net/http"
)

// Ids are opaque strings; the server encodes 64-bit integers in decimal.

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Network struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerID   string `json:"ownerId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Folder struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	NetworkID string  `json:"networkId"`
	ParentID  *string `json:"parentId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type Note struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	NetworkID string  `json:"networkId"`
	ParentID  *string `json:"parentId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type NetworkSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderContent is a folder with its direct notes and subfolders.
type FolderContent struct {
	Folder
	Network    NetworkSummary `json:"network"`
	Notes      []Note         `json:"notes"`
	SubFolders []Folder       `json:"subFolders"`
}

type NewFolder struct {
	Name      string  `json:"name"`
	NetworkID string  `json:"networkId"`
	ParentID  *string `json:"parentId,omitempty"`
}

type NewNote struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	NetworkID string  `json:"networkId"`
	ParentID  *string `json:"parentId,omitempty"`
}

// NoteUpdate is a partial note update; nil fields are left unchanged.
type NoteUpdate struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Field      string `json:"field"`
	Reason     string `json:"reason"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("scireda: status %d", e.StatusCode)
	}
	return fmt.Sprintf("scireda: status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404, which the server also uses for
// resources owned by someone else.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsDeleteBlocked reports whether err is a refused folder delete and returns
// its reason code.
func IsDeleteBlocked(err error) (string, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict && apiErr.Reason != "" {
		return apiErr.Reason, true
	}
	return "", false
}
