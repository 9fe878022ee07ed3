package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scireda/backend/internal/model"
	"scireda/backend/internal/snowflake"
)

type NoteRepository interface {
	Create(ctx context.Context, note model.Note) (model.Note, error)
	GetByID(ctx context.Context, id int64) (model.Note, error)
	ListTopLevel(ctx context.Context, networkID int64) ([]model.Note, error)
	ListByParent(ctx context.Context, parentID int64) ([]model.Note, error)
	Update(ctx context.Context, note model.Note) (model.Note, error)
	Delete(ctx context.Context, id int64) error
	DeleteByParent(ctx context.Context, parentID int64) (int64, error)
	DeleteByNetwork(ctx context.Context, networkID int64) (int64, error)
}

type noteRepository struct {
	db dbtx
}

func NewNoteRepository(db dbtx) NoteRepository {
	return &noteRepository{db: db}
}

const noteColumns = `id, title, content, network_id, parent_id, created_at, updated_at`

func (r *noteRepository) Create(ctx context.Context, note model.Note) (model.Note, error) {
	note.ID = snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO notes (id, title, content, network_id, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID,
		note.Title,
		note.Content,
		note.NetworkID,
		nullableInt64(note.ParentID),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}

	note.CreatedAt = now
	note.UpdatedAt = now
	return note, nil
}

func (r *noteRepository) GetByID(ctx context.Context, id int64) (model.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	note, err := scanNote(row)
	if err != nil {
		return model.Note{}, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

func (r *noteRepository) ListTopLevel(ctx context.Context, networkID int64) ([]model.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes WHERE network_id = ? AND parent_id IS NULL ORDER BY title, id`, networkID)
}

func (r *noteRepository) ListByParent(ctx context.Context, parentID int64) ([]model.Note, error) {
	return r.list(ctx, `SELECT `+noteColumns+` FROM notes WHERE parent_id = ? ORDER BY title, id`, parentID)
}

func (r *noteRepository) list(ctx context.Context, query string, args ...any) ([]model.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	notes := make([]model.Note, 0)
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return notes, nil
}

func (r *noteRepository) Update(ctx context.Context, note model.Note) (model.Note, error) {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE notes SET title = ?, content = ?, network_id = ?, parent_id = ?, updated_at = ? WHERE id = ?`,
		note.Title,
		note.Content,
		note.NetworkID,
		nullableInt64(note.ParentID),
		formatTime(time.Now()),
		note.ID,
	)
	if err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return model.Note{}, fmt.Errorf("update note: %w", err)
	}
	return r.GetByID(ctx, note.ID)
}

func (r *noteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	return nil
}

func (r *noteRepository) DeleteByParent(ctx context.Context, parentID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE parent_id = ?`, parentID)
	if err != nil {
		return 0, fmt.Errorf("delete folder notes: %w", err)
	}
	return res.RowsAffected()
}

func (r *noteRepository) DeleteByNetwork(ctx context.Context, networkID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE network_id = ?`, networkID)
	if err != nil {
		return 0, fmt.Errorf("delete network notes: %w", err)
	}
	return res.RowsAffected()
}

func scanNote(s scanner) (model.Note, error) {
	var note model.Note
	var parentID sql.NullInt64
	var createdAt, updatedAt string
	if err := s.Scan(&note.ID, &note.Title, &note.Content, &note.NetworkID, &parentID, &createdAt, &updatedAt); err != nil {
		return model.Note{}, err
	}
	note.ParentID = int64Ptr(parentID)
	var err error
	if note.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Note{}, fmt.Errorf("parse note created_at: %w", err)
	}
	if note.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Note{}, fmt.Errorf("parse note updated_at: %w", err)
	}
	return note, nil
}
