// Package collection builds an in-memory view of the catalog's playlist
// hierarchy and classifies its nodes for export.
package collection

import (
	"context"
	"fmt"

	"cratesync/internal/catalog"
)

// Catalog is the narrow read surface the graph needs. *catalog.DB satisfies
// it; tests substitute a stub.
type Catalog interface {
	ListCollections(ctx context.Context) ([]catalog.CollectionNode, error)
	ListDynamicIDs(ctx context.Context) (map[string]struct{}, error)
	ListTracks(ctx context.Context, collectionID string) ([]catalog.TrackRef, error)
}

// Kind classifies a hierarchy node.
type Kind int

const (
	// KindFolder has children and only organizes other nodes.
	KindFolder Kind = iota
	// KindPlaylist is a childless node with at least one track.
	KindPlaylist
	// KindEmpty has neither children nor tracks and is skipped.
	KindEmpty
)

// Graph is the loaded hierarchy. Dynamic (rule-based) playlists are removed
// during load; their membership cannot be enumerated, so they are invisible
// to every accessor.
type Graph struct {
	cat      Catalog
	nodes    map[string]catalog.CollectionNode
	children map[string][]string
	order    []string
	tracks   map[string][]catalog.TrackRef
	paths    map[string][]string
}

func isTopLevel(parentID string) bool {
	return parentID == "" || parentID == "root"
}

// Load reads the full hierarchy once. Track lists are fetched lazily and
// memoized per node.
func Load(ctx context.Context, cat Catalog) (*Graph, error) {
	nodes, err := cat.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("load hierarchy: %w", err)
	}
	dynamic, err := cat.ListDynamicIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dynamic ids: %w", err)
	}

	g := &Graph{
		cat:      cat,
		nodes:    make(map[string]catalog.CollectionNode, len(nodes)),
		children: make(map[string][]string),
		tracks:   make(map[string][]catalog.TrackRef),
		paths:    make(map[string][]string),
	}
	for _, node := range nodes {
		if _, isDynamic := dynamic[node.ID]; isDynamic {
			continue
		}
		g.nodes[node.ID] = node
		g.order = append(g.order, node.ID)
	}
	// Children keep the catalog's sequence order; an unknown parent id
	// makes the node top-level rather than unreachable.
	for _, id := range g.order {
		node := g.nodes[id]
		parent := node.ParentID
		if isTopLevel(parent) {
			parent = ""
		} else if _, ok := g.nodes[parent]; !ok {
			parent = ""
		}
		g.children[parent] = append(g.children[parent], id)
	}
	return g, nil
}

// Node returns the node for id.
func (g *Graph) Node(id string) (catalog.CollectionNode, bool) {
	node, ok := g.nodes[id]
	return node, ok
}

// Roots returns the top-level nodes in sequence order.
func (g *Graph) Roots() []catalog.CollectionNode {
	return g.resolve(g.children[""])
}

// ChildrenOf returns id's direct children in sequence order.
func (g *Graph) ChildrenOf(id string) []catalog.CollectionNode {
	return g.resolve(g.children[id])
}

func (g *Graph) resolve(ids []string) []catalog.CollectionNode {
	if len(ids) == 0 {
		return nil
	}
	out := make([]catalog.CollectionNode, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id])
	}
	return out
}

// TracksOf returns id's tracks in track order, fetching from the catalog at
// most once per node.
func (g *Graph) TracksOf(ctx context.Context, id string) ([]catalog.TrackRef, error) {
	if cached, ok := g.tracks[id]; ok {
		return cached, nil
	}
	tracks, err := g.cat.ListTracks(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load tracks for %s: %w", id, err)
	}
	g.tracks[id] = tracks
	return tracks, nil
}

// Classify reports what role a node plays in the hierarchy.
func (g *Graph) Classify(ctx context.Context, id string) (Kind, error) {
	if len(g.children[id]) > 0 {
		return KindFolder, nil
	}
	tracks, err := g.TracksOf(ctx, id)
	if err != nil {
		return KindEmpty, err
	}
	if len(tracks) > 0 {
		return KindPlaylist, nil
	}
	return KindEmpty, nil
}

// IsLeaf reports whether id is an exportable playlist.
func (g *Graph) IsLeaf(ctx context.Context, id string) (bool, error) {
	kind, err := g.Classify(ctx, id)
	return kind == KindPlaylist, err
}

// FullPath returns the node names from the top level down to id, memoized.
// A parent cycle terminates the walk at the repeated node.
func (g *Graph) FullPath(id string) []string {
	if cached, ok := g.paths[id]; ok {
		return cached
	}

	var reversed []string
	visited := make(map[string]struct{})
	for current := id; ; {
		node, ok := g.nodes[current]
		if !ok {
			break
		}
		if _, seen := visited[current]; seen {
			break
		}
		visited[current] = struct{}{}
		reversed = append(reversed, node.Name)
		if isTopLevel(node.ParentID) {
			break
		}
		current = node.ParentID
	}

	path := make([]string, len(reversed))
	for i, name := range reversed {
		path[len(reversed)-1-i] = name
	}
	g.paths[id] = path
	return path
}

// Leaves returns the exportable playlists in catalog sequence order.
func (g *Graph) Leaves(ctx context.Context) ([]catalog.CollectionNode, error) {
	var leaves []catalog.CollectionNode
	for _, id := range g.order {
		leaf, err := g.IsLeaf(ctx, id)
		if err != nil {
			return nil, err
		}
		if leaf {
			leaves = append(leaves, g.nodes[id])
		}
	}
	return leaves, nil
}
