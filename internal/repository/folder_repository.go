package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"scireda/backend/internal/model"
	"scireda/backend/internal/snowflake"
)

type FolderRepository interface {
	Create(ctx context.Context, name string, networkID int64, parentID *int64) (model.Folder, error)
	GetByID(ctx context.Context, id int64) (model.Folder, error)
	ListTopLevel(ctx context.Context, networkID int64) ([]model.Folder, error)
	ListChildren(ctx context.Context, parentID int64) ([]model.Folder, error)
	Update(ctx context.Context, folder model.Folder) (model.Folder, error)
	Delete(ctx context.Context, id int64) error
	DeleteByNetwork(ctx context.Context, networkID int64) (int64, error)
}

type folderRepository struct {
	db dbtx
}

func NewFolderRepository(db dbtx) FolderRepository {
	return &folderRepository{db: db}
}

const folderColumns = `id, name, network_id, parent_id, created_at, updated_at`

func (r *folderRepository) Create(ctx context.Context, name string, networkID int64, parentID *int64) (model.Folder, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO folders (id, name, network_id, parent_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id,
		name,
		networkID,
		nullableInt64(parentID),
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.Folder{}, fmt.Errorf("create folder: %w", err)
	}

	return model.Folder{
		ID:        id,
		Name:      name,
		NetworkID: networkID,
		ParentID:  parentID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *folderRepository) GetByID(ctx context.Context, id int64) (model.Folder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+folderColumns+` FROM folders WHERE id = ?`, id)
	folder, err := scanFolder(row)
	if err != nil {
		return model.Folder{}, fmt.Errorf("get folder: %w", err)
	}
	return folder, nil
}

func (r *folderRepository) ListTopLevel(ctx context.Context, networkID int64) ([]model.Folder, error) {
	return r.list(ctx, `SELECT `+folderColumns+` FROM folders WHERE network_id = ? AND parent_id IS NULL ORDER BY name, id`, networkID)
}

func (r *folderRepository) ListChildren(ctx context.Context, parentID int64) ([]model.Folder, error) {
	return r.list(ctx, `SELECT `+folderColumns+` FROM folders WHERE parent_id = ? ORDER BY name, id`, parentID)
}

func (r *folderRepository) list(ctx context.Context, query string, args ...any) ([]model.Folder, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	folders := make([]model.Folder, 0)
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}
	return folders, nil
}

func (r *folderRepository) Update(ctx context.Context, folder model.Folder) (model.Folder, error) {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE folders SET name = ?, network_id = ?, parent_id = ?, updated_at = ? WHERE id = ?`,
		folder.Name,
		folder.NetworkID,
		nullableInt64(folder.ParentID),
		formatTime(time.Now()),
		folder.ID,
	)
	if err != nil {
		return model.Folder{}, fmt.Errorf("update folder: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return model.Folder{}, fmt.Errorf("update folder: %w", err)
	}
	return r.GetByID(ctx, folder.ID)
}

func (r *folderRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	return nil
}

// DeleteByNetwork removes every folder of a network in one statement, so the
// parent_id constraint is only checked once the whole tree is gone.
func (r *folderRepository) DeleteByNetwork(ctx context.Context, networkID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM folders WHERE network_id = ?`, networkID)
	if err != nil {
		return 0, fmt.Errorf("delete network folders: %w", err)
	}
	return res.RowsAffected()
}

func scanFolder(s scanner) (model.Folder, error) {
	var folder model.Folder
	var parentID sql.NullInt64
	var createdAt, updatedAt string
	if err := s.Scan(&folder.ID, &folder.Name, &folder.NetworkID, &parentID, &createdAt, &updatedAt); err != nil {
		return model.Folder{}, err
	}
	folder.ParentID = int64Ptr(parentID)
	var err error
	if folder.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Folder{}, fmt.Errorf("parse folder created_at: %w", err)
	}
	if folder.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Folder{}, fmt.Errorf("parse folder updated_at: %w", err)
	}
	return folder, nil
}
