package service

import (
	"context"
	"strings"

	"scireda/backend/internal/logger"
	"scireda/backend/internal/model"
	"scireda/backend/internal/repository"
)

type NetworkService interface {
	Create(ctx context.Context, actorID, name string) (model.Network, error)
	List(ctx context.Context, actorID string) ([]model.Network, error)
	Get(ctx context.Context, actorID string, id int64) (model.Network, error)
	Rename(ctx context.Context, actorID string, id int64, name string) (model.Network, error)
	Delete(ctx context.Context, actorID string, id int64) error
}

type networkService struct {
	tx       repository.Transactor
	networks repository.NetworkRepository
}

func NewNetworkService(tx repository.Transactor, networks repository.NetworkRepository) NetworkService {
	return &networkService{tx: tx, networks: networks}
}

func (s *networkService) Create(ctx context.Context, actorID, name string) (model.Network, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Network{}, invalid("name", "must not be empty")
	}
	if actorID == "" {
		return model.Network{}, ErrForbidden
	}

	network, err := s.networks.Create(ctx, trimmed, actorID)
	if err != nil {
		return model.Network{}, err
	}
	logger.Info("network created", "module", "service", "action", "create", "resource", "network", "result", "ok", "network_id", network.ID)
	return network, nil
}

func (s *networkService) List(ctx context.Context, actorID string) ([]model.Network, error) {
	return s.networks.ListByOwner(ctx, actorID)
}

func (s *networkService) Get(ctx context.Context, actorID string, id int64) (model.Network, error) {
	return ownedNetwork(ctx, s.networks, actorID, id)
}

func (s *networkService) Rename(ctx context.Context, actorID string, id int64, name string) (model.Network, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return model.Network{}, invalid("name", "must not be empty")
	}

	var renamed model.Network
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := ownedNetwork(ctx, repos.Networks, actorID, id); err != nil {
			return err
		}
		network, err := repos.Networks.Update(ctx, id, trimmed)
		if err != nil {
			return err
		}
		renamed = network
		return nil
	})
	if err != nil {
		return model.Network{}, err
	}
	return renamed, nil
}

// Delete removes a network with all of its notes and folders in one
// transaction, so no orphaned rows can survive.
func (s *networkService) Delete(ctx context.Context, actorID string, id int64) error {
	var notesDeleted, foldersDeleted int64
	err := s.tx.WithinTx(ctx, func(repos repository.Repositories) error {
		if _, err := ownedNetwork(ctx, repos.Networks, actorID, id); err != nil {
			return err
		}
		var err error
		if notesDeleted, err = repos.Notes.DeleteByNetwork(ctx, id); err != nil {
			return err
		}
		if foldersDeleted, err = repos.Folders.DeleteByNetwork(ctx, id); err != nil {
			return err
		}
		return repos.Networks.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Info("network deleted", "module", "service", "action", "delete", "resource", "network", "result", "ok", "network_id", id, "notes_deleted", notesDeleted, "folders_deleted", foldersDeleted)
	return nil
}
