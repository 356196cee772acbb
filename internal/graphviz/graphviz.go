// Package graphviz renders the discovered subgraph to DOT, SVG, or PNG,
// delegating layout to a real Graphviz engine via goccy/go-graphviz
// rather than hand-rolling a force-directed layout — this system's graph
// is the product, not a debugging aid, so a proper layout engine earns
// its keep.
package graphviz

import (
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"

	"github.com/videograph/walker/internal/graphstore"
)

// Format is the rendered output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// Renderer builds a Graphviz graph from the durable graph store and
// renders it to disk.
type Renderer struct {
	store *graphstore.Store
}

// New returns a Renderer reading from store.
func New(store *graphstore.Store) *Renderer {
	return &Renderer{store: store}
}

// Render writes the discovered subgraph to path in the given format.
func (r *Renderer) Render(ctx context.Context, path string, format Format) error {
	vertices, err := r.store.AllVertices()
	if err != nil {
		return fmt.Errorf("load vertices: %w", err)
	}
	edges, err := r.store.AllEdges()
	if err != nil {
		return fmt.Errorf("load edges: %w", err)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return fmt.Errorf("new graph: %w", err)
	}
	defer graph.Close()

	nodes := make(map[string]*cgraph.Node, len(vertices))
	for _, v := range vertices {
		label := v.Title
		if label == "" {
			label = v.ID
		}
		n, err := graph.CreateNodeByName(v.ID)
		if err != nil {
			return fmt.Errorf("create node %s: %w", v.ID, err)
		}
		n.SetLabel(label)
		nodes[v.ID] = n
	}

	for _, e := range edges {
		from, ok := nodes[e.From]
		if !ok {
			continue
		}
		to, ok := nodes[e.To]
		if !ok {
			// The target was discovered-by-edge only (not itself
			// recorded, e.g. it sat past the discovery cap); still worth
			// drawing so the cap's effect on the frontier's edge is
			// visible, so materialize a bare node for it.
			to, err = graph.CreateNodeByName(e.To)
			if err != nil {
				continue
			}
			to.SetLabel(e.To)
			nodes[e.To] = to
		}
		if _, err := graph.CreateEdgeByName(e.From+"->"+e.To, from, to); err != nil {
			return fmt.Errorf("create edge %s->%s: %w", e.From, e.To, err)
		}
	}

	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		gvFormat = graphviz.XDOT
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return fmt.Errorf("unsupported render format: %s", format)
	}

	if err := gv.RenderFilename(ctx, graph, gvFormat, path); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}
