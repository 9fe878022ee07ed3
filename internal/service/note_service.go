package service

import (
	"context"
	"strings"

	"scireda/backend/internal/logger"
	"scireda/backend/internal/model"
	"scireda/backend/internal/repository"
)

type NoteInput struct {
	Title     string
	Content   string
	NetworkID int64
	ParentID  *int64
}

// NotePatch is a partial update; nil fields are left unchanged. ClearParent
// moves the note to the top level of its network.
type NotePatch struct {
	Title       *string
	Content     *string
	NetworkID   *int64
	ParentID    *int64
	ClearParent bool
}

type NoteService interface {
	Create(ctx context.Context, actorID string, input NoteInput) (model.Note, error)
	Get(ctx context.Context, actorID string, id int64) (model.Note, error)
	Update(ctx context.Context, actorID string, id int64, patch NotePatch) (model.Note, error)
	Delete(ctx context.Context, actorID string, id int64) error
	ListTopLevel(ctx context.Context, actorID string, networkID int64) ([]model.Note, error)
	ListByFolder(ctx context.Context, actorID string, folderID int64) ([]model.Note, error)
}

type noteService struct {
	tx    repository.Transactor
	repos repository.Repositories
}

func NewNoteService(tx repository.Transactor, repos repository.Repositories) NoteService {
	return &noteService{tx: tx, repos: repos}
}

func (s *noteService) Create(ctx context.Context, actorID string, input NoteInput) (model.Note, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Note{}, invalid("title", "must not be empty")
	}

	var created model.Note
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := ownedNetwork(ctx, repos.Networks, actorID, input.NetworkID); err != nil {
			return err
		}
		if err := checkParent(ctx, repos.Folders, input.NetworkID, input.ParentID); err != nil {
			return err
		}
		note, err := repos.Notes.Create(ctx, model.Note{
			Title:     title,
			Content:   input.Content,
			NetworkID: input.NetworkID,
			ParentID:  input.ParentID,
		})
		if err != nil {
			return err
		}
		created = note
		return nil
	})
	if err != nil {
		return model.Note{}, err
	}

	logger.Info("note created", "module", "service", "action", "create", "resource", "note", "result", "ok", "note_id", created.ID, "network_id", created.NetworkID)
	return created, nil
}

func (s *noteService) Get(ctx context.Context, actorID string, id int64) (model.Note, error) {
	return ownedNote(ctx, s.repos, actorID, id)
}

func (s *noteService) Update(ctx context.Context, actorID string, id int64, patch NotePatch) (model.Note, error) {
	var updated model.Note
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		note, err := ownedNote(ctx, repos, actorID, id)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			title := strings.TrimSpace(*patch.Title)
			if title == "" {
				return invalid("title", "must not be empty")
			}
			note.Title = title
		}
		if patch.Content != nil {
			note.Content = *patch.Content
		}

		networkChanged := patch.NetworkID != nil && *patch.NetworkID != note.NetworkID
		if networkChanged {
			if _, err := ownedNetwork(ctx, repos.Networks, actorID, *patch.NetworkID); err != nil {
				return err
			}
			note.NetworkID = *patch.NetworkID
		}

		parentChanged := false
		switch {
		case patch.ClearParent:
			parentChanged = note.ParentID != nil
			note.ParentID = nil
		case patch.ParentID != nil:
			parentChanged = note.ParentID == nil || *note.ParentID != *patch.ParentID
			parentID := *patch.ParentID
			note.ParentID = &parentID
		}

		if networkChanged || parentChanged {
			if err := checkParent(ctx, repos.Folders, note.NetworkID, note.ParentID); err != nil {
				return err
			}
		}

		updated, err = repos.Notes.Update(ctx, note)
		return err
	})
	if err != nil {
		return model.Note{}, err
	}

	logger.Debug("note updated", "module", "service", "action", "update", "resource", "note", "result", "ok", "note_id", id)
	return updated, nil
}

func (s *noteService) Delete(ctx context.Context, actorID string, id int64) error {
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := ownedNote(ctx, repos, actorID, id); err != nil {
			return err
		}
		return repos.Notes.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Info("note deleted", "module", "service", "action", "delete", "resource", "note", "result", "ok", "note_id", id)
	return nil
}

func (s *noteService) ListTopLevel(ctx context.Context, actorID string, networkID int64) ([]model.Note, error) {
	if _, err := ownedNetwork(ctx, s.repos.Networks, actorID, networkID); err != nil {
		return nil, err
	}
	return s.repos.Notes.ListTopLevel(ctx, networkID)
}

func (s *noteService) ListByFolder(ctx context.Context, actorID string, folderID int64) ([]model.Note, error) {
	if _, _, err := ownedFolder(ctx, s.repos, actorID, folderID); err != nil {
		return nil, err
	}
	return s.repos.Notes.ListByParent(ctx, folderID)
}
