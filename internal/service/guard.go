package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"scireda/backend/internal/model"
	"scireda/backend/internal/repository"
)

// Authorize allows an action only when the actor owns the resource.
func Authorize(actorID, ownerID string) error {
	if actorID == "" || actorID != ownerID {
		return ErrForbidden
	}
	return nil
}

// ownedNetwork loads a network and checks that actorID owns it.
func ownedNetwork(ctx context.Context, networks repository.NetworkRepository, actorID string, id int64) (model.Network, error) {
	network, err := networks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Network{}, ErrNotFound
		}
		return model.Network{}, fmt.Errorf("get network: %w", err)
	}
	if err := Authorize(actorID, network.OwnerID); err != nil {
		return model.Network{}, err
	}
	return network, nil
}

// ownedFolder loads a folder and authorizes actorID through its network.
func ownedFolder(ctx context.Context, repos repository.Repositories, actorID string, id int64) (model.Folder, model.Network, error) {
	folder, err := repos.Folders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Folder{}, model.Network{}, ErrNotFound
		}
		return model.Folder{}, model.Network{}, fmt.Errorf("get folder: %w", err)
	}
	network, err := ownedNetwork(ctx, repos.Networks, actorID, folder.NetworkID)
	if err != nil {
		return model.Folder{}, model.Network{}, err
	}
	return folder, network, nil
}

// ownedNote loads a note and authorizes actorID through its network.
func ownedNote(ctx context.Context, repos repository.Repositories, actorID string, id int64) (model.Note, error) {
	note, err := repos.Notes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Note{}, ErrNotFound
		}
		return model.Note{}, fmt.Errorf("get note: %w", err)
	}
	if _, err := ownedNetwork(ctx, repos.Networks, actorID, note.NetworkID); err != nil {
		return model.Note{}, err
	}
	return note, nil
}

// checkParent verifies that parentID, when set, is a folder of networkID.
func checkParent(ctx context.Context, folders repository.FolderRepository, networkID int64, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	parent, err := folders.GetByID(ctx, *parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrParentNotFound
		}
		return fmt.Errorf("get parent folder: %w", err)
	}
	if parent.NetworkID != networkID {
		return ErrMismatchedNetwork
	}
	return nil
}
