package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"scireda/backend/internal/logger"
	"scireda/backend/internal/model"
	"scireda/backend/internal/repository"
)

// maxFolderDepth bounds the ancestor walk used to reject cycles.
const maxFolderDepth = 1024

type FolderInput struct {
	Name      string
	NetworkID int64
	ParentID  *int64
}

// FolderPatch is a partial update; nil fields are left unchanged. ClearParent
// moves the folder to the top level.
type FolderPatch struct {
	Name        *string
	NetworkID   *int64
	ParentID    *int64
	ClearParent bool
}

type FolderService interface {
	Create(ctx context.Context, actorID string, input FolderInput) (model.Folder, error)
	Update(ctx context.Context, actorID string, id int64, patch FolderPatch) (model.Folder, error)
	Delete(ctx context.Context, actorID string, id int64, force bool) error
	ListTopLevel(ctx context.Context, actorID string, networkID int64) ([]model.FolderContent, error)
	GetContent(ctx context.Context, actorID string, id int64) (model.FolderContent, error)
}

type folderService struct {
	tx    repository.Transactor
	repos repository.Repositories
}

func NewFolderService(tx repository.Transactor, repos repository.Repositories) FolderService {
	return &folderService{tx: tx, repos: repos}
}

func (s *folderService) Create(ctx context.Context, actorID string, input FolderInput) (model.Folder, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.Folder{}, invalid("name", "must not be empty")
	}

	var created model.Folder
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := ownedNetwork(ctx, repos.Networks, actorID, input.NetworkID); err != nil {
			return err
		}
		if err := checkParent(ctx, repos.Folders, input.NetworkID, input.ParentID); err != nil {
			return err
		}
		folder, err := repos.Folders.Create(ctx, name, input.NetworkID, input.ParentID)
		if err != nil {
			return err
		}
		created = folder
		return nil
	})
	if err != nil {
		return model.Folder{}, err
	}

	logger.Info("folder created", "module", "service", "action", "create", "resource", "folder", "result", "ok", "folder_id", created.ID, "network_id", created.NetworkID)
	return created, nil
}

func (s *folderService) Update(ctx context.Context, actorID string, id int64, patch FolderPatch) (model.Folder, error) {
	var updated model.Folder
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		folder, _, err := ownedFolder(ctx, repos, actorID, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return invalid("name", "must not be empty")
			}
			folder.Name = name
		}

		networkChanged := patch.NetworkID != nil && *patch.NetworkID != folder.NetworkID
		if networkChanged {
			if _, err := ownedNetwork(ctx, repos.Networks, actorID, *patch.NetworkID); err != nil {
				return err
			}
			if err := requireNoChildren(ctx, repos, folder.ID); err != nil {
				return err
			}
			folder.NetworkID = *patch.NetworkID
		}

		parentChanged := false
		switch {
		case patch.ClearParent:
			parentChanged = folder.ParentID != nil
			folder.ParentID = nil
		case patch.ParentID != nil:
			if *patch.ParentID == folder.ID {
				return invalid("parentId", "a folder cannot be its own parent")
			}
			parentChanged = folder.ParentID == nil || *folder.ParentID != *patch.ParentID
			parentID := *patch.ParentID
			folder.ParentID = &parentID
		}

		if networkChanged || parentChanged {
			if err := checkParent(ctx, repos.Folders, folder.NetworkID, folder.ParentID); err != nil {
				return err
			}
			if parentChanged && folder.ParentID != nil {
				if err := checkNotDescendant(ctx, repos.Folders, folder.ID, *folder.ParentID); err != nil {
					return err
				}
			}
		}

		updated, err = repos.Folders.Update(ctx, folder)
		return err
	})
	if err != nil {
		return model.Folder{}, err
	}

	logger.Info("folder updated", "module", "service", "action", "update", "resource", "folder", "result", "ok", "folder_id", id)
	return updated, nil
}

// requireNoChildren rejects moving a non-empty folder to another network,
// since its descendants would be left in the old one.
func requireNoChildren(ctx context.Context, repos repository.Repositories, folderID int64) error {
	subFolders, err := repos.Folders.ListChildren(ctx, folderID)
	if err != nil {
		return fmt.Errorf("list subfolders: %w", err)
	}
	notes, err := repos.Notes.ListByParent(ctx, folderID)
	if err != nil {
		return fmt.Errorf("list folder notes: %w", err)
	}
	if len(subFolders) > 0 || len(notes) > 0 {
		return invalid("networkId", "a folder with content cannot move to another network")
	}
	return nil
}

// checkNotDescendant walks up from parentID and fails if folderID is found,
// which would turn the move into a cycle.
func checkNotDescendant(ctx context.Context, folders repository.FolderRepository, folderID, parentID int64) error {
	current := parentID
	for depth := 0; depth < maxFolderDepth; depth++ {
		if current == folderID {
			return invalid("parentId", "a folder cannot be moved into its own subfolder")
		}
		ancestor, err := folders.GetByID(ctx, current)
		if err != nil {
			return fmt.Errorf("get ancestor folder: %w", err)
		}
		if ancestor.ParentID == nil {
			return nil
		}
		current = *ancestor.ParentID
	}
	return invalid("parentId", "folder tree is too deep")
}

func (s *folderService) Delete(ctx context.Context, actorID string, id int64, force bool) error {
	var notesDeleted int64
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		folder, network, err := ownedFolder(ctx, repos, actorID, id)
		if err != nil {
			return err
		}
		content, err := loadFolderContent(ctx, repos, folder, network)
		if err != nil {
			return err
		}

		decision := CanDeleteFolder(content, force)
		if !decision.Allowed {
			return &DeleteBlockedError{Reason: decision.Reason}
		}

		if force && len(content.Notes) > 0 {
			notesDeleted, err = repos.Notes.DeleteByParent(ctx, folder.ID)
			if err != nil {
				return err
			}
		}
		return repos.Folders.Delete(ctx, folder.ID)
	})
	if err != nil {
		var blocked *DeleteBlockedError
		if errors.As(err, &blocked) {
			logger.Warn("folder delete blocked", "module", "service", "action", "delete", "resource", "folder", "result", "failed", "folder_id", id, "force", force, "reason", string(blocked.Reason))
		}
		return err
	}

	logger.Info("folder deleted", "module", "service", "action", "delete", "resource", "folder", "result", "ok", "folder_id", id, "force", force, "notes_deleted", notesDeleted)
	return nil
}

func (s *folderService) ListTopLevel(ctx context.Context, actorID string, networkID int64) ([]model.FolderContent, error) {
	network, err := ownedNetwork(ctx, s.repos.Networks, actorID, networkID)
	if err != nil {
		return nil, err
	}
	folders, err := s.repos.Folders.ListTopLevel(ctx, networkID)
	if err != nil {
		return nil, err
	}
	return loadContents(ctx, s.repos, folders, network)
}

func (s *folderService) GetContent(ctx context.Context, actorID string, id int64) (model.FolderContent, error) {
	folder, network, err := ownedFolder(ctx, s.repos, actorID, id)
	if err != nil {
		return model.FolderContent{}, err
	}
	return loadFolderContent(ctx, s.repos, folder, network)
}
