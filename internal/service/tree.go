package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"scireda/backend/internal/model"
	"scireda/backend/internal/repository"
)

// contentLoadConcurrency bounds parallel child queries for a top-level listing.
const contentLoadConcurrency = 4

// loadFolderContent fetches the direct notes and subfolders of folder. Deeper
// levels are left to the client to request when a subfolder is expanded.
func loadFolderContent(ctx context.Context, repos repository.Repositories, folder model.Folder, network model.Network) (model.FolderContent, error) {
	notes, err := repos.Notes.ListByParent(ctx, folder.ID)
	if err != nil {
		return model.FolderContent{}, fmt.Errorf("list folder notes: %w", err)
	}
	subFolders, err := repos.Folders.ListChildren(ctx, folder.ID)
	if err != nil {
		return model.FolderContent{}, fmt.Errorf("list subfolders: %w", err)
	}
	return model.FolderContent{
		Folder:     folder,
		Network:    network,
		Notes:      notes,
		SubFolders: subFolders,
	}, nil
}

// loadContents expands each folder by one level, preserving input order.
func loadContents(ctx context.Context, repos repository.Repositories, folders []model.Folder, network model.Network) ([]model.FolderContent, error) {
	contents := make([]model.FolderContent, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(contentLoadConcurrency)
	for i, folder := range folders {
		g.Go(func() error {
			content, err := loadFolderContent(gctx, repos, folder, network)
			if err != nil {
				return err
			}
			contents[i] = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}
