package client

import (
	"context"
	"iter"
	"sync"
)

// FolderLoader fetches one level of a folder. *Client implements it.
type FolderLoader interface {
	Folder(ctx context.Context, id string) (FolderContent, error)
}

type NodeKind int

const (
	FolderNode NodeKind = iota
	NoteNode
)

// Node is one visible row of the tree.
type Node struct {
	Kind     NodeKind
	Depth    int
	Folder   *Folder
	Note     *Note
	Expanded bool
}

// Expander tracks which folders are open and caches their content, so the
// tree is only fetched as far as the user has opened it.
type Expander struct {
	loader FolderLoader

	mu       sync.Mutex
	expanded map[string]bool
	cache    map[string]FolderContent
}

func NewExpander(loader FolderLoader) *Expander {
	return &Expander{
		loader:   loader,
		expanded: make(map[string]bool),
		cache:    make(map[string]FolderContent),
	}
}

// Seed stores already fetched content, such as a top-level listing, without
// marking the folders expanded.
func (e *Expander) Seed(contents ...FolderContent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, content := range contents {
		e.cache[content.ID] = content
	}
}

// Expand marks a folder open and returns its content, fetching it on first use.
func (e *Expander) Expand(ctx context.Context, folderID string) (FolderContent, error) {
	content, err := e.content(ctx, folderID)
	if err != nil {
		return FolderContent{}, err
	}
	e.mu.Lock()
	e.expanded[folderID] = true
	e.mu.Unlock()
	return content, nil
}

// Collapse closes a folder and forgets its cached content, so the next
// Expand fetches a fresh copy.
func (e *Expander) Collapse(folderID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.expanded, folderID)
	delete(e.cache, folderID)
}

// Invalidate drops cached content after a mutation but keeps the folder open.
func (e *Expander) Invalidate(folderID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.cache, folderID)
}

func (e *Expander) IsExpanded(folderID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.expanded[folderID]
}

func (e *Expander) content(ctx context.Context, folderID string) (FolderContent, error) {
	e.mu.Lock()
	content, ok := e.cache[folderID]
	e.mu.Unlock()
	if ok {
		return content, nil
	}

	content, err := e.loader.Folder(ctx, folderID)
	if err != nil {
		return FolderContent{}, err
	}
	e.mu.Lock()
	e.cache[folderID] = content
	e.mu.Unlock()
	return content, nil
}

// Walk yields the visible tree depth first: each folder, then, if it is
// expanded, its subfolders and notes one level deeper. Only expanded folders
// are fetched. A fetch error is yielded once and ends the walk.
func (e *Expander) Walk(ctx context.Context, roots []Folder) iter.Seq2[Node, error] {
	return func(yield func(Node, error) bool) {
		for i := range roots {
			if !e.walkFolder(ctx, &roots[i], 0, yield) {
				return
			}
		}
	}
}

func (e *Expander) walkFolder(ctx context.Context, folder *Folder, depth int, yield func(Node, error) bool) bool {
	expanded := e.IsExpanded(folder.ID)
	if !yield(Node{Kind: FolderNode, Depth: depth, Folder: folder, Expanded: expanded}, nil) {
		return false
	}
	if !expanded {
		return true
	}
	if err := ctx.Err(); err != nil {
		yield(Node{}, err)
		return false
	}

	content, err := e.content(ctx, folder.ID)
	if err != nil {
		yield(Node{}, err)
		return false
	}
	for i := range content.SubFolders {
		if !e.walkFolder(ctx, &content.SubFolders[i], depth+1, yield) {
			return false
		}
	}
	for i := range content.Notes {
		if !yield(Node{Kind: NoteNode, Depth: depth + 1, Note: &content.Notes[i]}, nil) {
			return false
		}
	}
	return true
}
