package repository

import (
	"context"
	"fmt"
	"time"

	"scireda/backend/internal/model"
	"scireda/backend/internal/snowflake"
)

type NetworkRepository interface {
	Create(ctx context.Context, name, ownerID string) (model.Network, error)
	GetByID(ctx context.Context, id int64) (model.Network, error)
	ListByOwner(ctx context.Context, ownerID string) ([]model.Network, error)
	Update(ctx context.Context, id int64, name string) (model.Network, error)
	Delete(ctx context.Context, id int64) error
}

type networkRepository struct {
	db dbtx
}

func NewNetworkRepository(db dbtx) NetworkRepository {
	return &networkRepository{db: db}
}

const networkColumns = `id, name, user_id, created_at, updated_at`

func (r *networkRepository) Create(ctx context.Context, name, ownerID string) (model.Network, error) {
	id := snowflake.NextID()
	now := time.Now().UTC()
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO networks (id, name, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		id,
		name,
		ownerID,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		return model.Network{}, fmt.Errorf("create network: %w", err)
	}

	return model.Network{
		ID:        id,
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (r *networkRepository) GetByID(ctx context.Context, id int64) (model.Network, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+networkColumns+` FROM networks WHERE id = ?`, id)
	network, err := scanNetwork(row)
	if err != nil {
		return model.Network{}, fmt.Errorf("get network: %w", err)
	}
	return network, nil
}

func (r *networkRepository) ListByOwner(ctx context.Context, ownerID string) ([]model.Network, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+networkColumns+` FROM networks WHERE user_id = ? ORDER BY name, id`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list networks: %w", err)
	}
	defer rows.Close()

	networks := make([]model.Network, 0)
	for rows.Next() {
		network, err := scanNetwork(rows)
		if err != nil {
			return nil, fmt.Errorf("scan network: %w", err)
		}
		networks = append(networks, network)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate networks: %w", err)
	}
	return networks, nil
}

func (r *networkRepository) Update(ctx context.Context, id int64, name string) (model.Network, error) {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE networks SET name = ?, updated_at = ? WHERE id = ?`,
		name,
		formatTime(time.Now()),
		id,
	)
	if err != nil {
		return model.Network{}, fmt.Errorf("update network: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return model.Network{}, fmt.Errorf("update network: %w", err)
	}
	return r.GetByID(ctx, id)
}

func (r *networkRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM networks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete network: %w", err)
	}
	if err := requireAffected(res); err != nil {
		return fmt.Errorf("delete network: %w", err)
	}
	return nil
}

func scanNetwork(s scanner) (model.Network, error) {
	var network model.Network
	var createdAt, updatedAt string
	if err := s.Scan(&network.ID, &network.Name, &network.OwnerID, &createdAt, &updatedAt); err != nil {
		return model.Network{}, err
	}
	var err error
	if network.CreatedAt, err = parseTime(createdAt); err != nil {
		return model.Network{}, fmt.Errorf("parse network created_at: %w", err)
	}
	if network.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return model.Network{}, fmt.Errorf("parse network updated_at: %w", err)
	}
	return network, nil
}
