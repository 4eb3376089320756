// Package bracket models how matches feed into follow-on matches as a
// directed acyclic graph. Edges point the way winners and losers move
// through the bracket.
package bracket

import (
	"errors"
	"slices"

	"github.com/dominikbraun/graph"
)

// Link says that a side of Match moves on to Next.
type Link struct {
	Match string
	Next  string
}

// Progression is the acyclic progression graph over one set of matches.
type Progression struct {
	depth map[string]int
	feeds map[string][]string

	// Rejected holds links that would close a cycle.
	Rejected []Link
	// Outside holds links to a match not in the set being built.
	Outside []Link
}

// Build adds every match as a vertex and every link between two of them as
// an edge. Links that would close a cycle are listed in Rejected, links that
// leave the set in Outside. Neither is added.
func Build(matchIDs []string, links []Link) (*Progression, error) {
	g := graph.New(graph.StringHash, graph.Directed(), graph.PreventCycles())
	p := &Progression{}

	known := make(map[string]bool, len(matchIDs))
	for _, id := range matchIDs {
		if known[id] {
			continue
		}
		known[id] = true
		if err := g.AddVertex(id); err != nil {
			return nil, err
		}
	}
	for _, l := range links {
		switch {
		case l.Match == "" || l.Next == "":
			continue
		case !known[l.Match] || !known[l.Next]:
			p.Outside = append(p.Outside, l)
			continue
		case l.Match == l.Next:
			p.Rejected = append(p.Rejected, l)
			continue
		}
		err := g.AddEdge(l.Match, l.Next)
		switch {
		case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
		case errors.Is(err, graph.ErrEdgeCreatesCycle):
			p.Rejected = append(p.Rejected, l)
		default:
			return nil, err
		}
	}

	depth, err := longestPaths(g)
	if err != nil {
		return nil, err
	}
	p.depth = depth

	pred, err := g.PredecessorMap()
	if err != nil {
		return nil, err
	}
	p.feeds = make(map[string][]string, len(pred))
	for id, from := range pred {
		if len(from) == 0 {
			continue
		}
		ids := make([]string, 0, len(from))
		for f := range from {
			ids = append(ids, f)
		}
		slices.Sort(ids)
		p.feeds[id] = ids
	}
	return p, nil
}

// longestPaths gives every vertex the length of the longest chain of
// matches leading into it.
func longestPaths(g graph.Graph[string, string]) (map[string]int, error) {
	order, err := graph.TopologicalSort(g)
	if err != nil {
		return nil, err
	}
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}
	depth := make(map[string]int, len(order))
	for _, v := range order {
		depth[v] = 0
	}
	for _, v := range order {
		for w := range adj[v] {
			if d := depth[v] + 1; d > depth[w] {
				depth[w] = d
			}
		}
	}
	return depth, nil
}

// Depth is how many matches precede id on its longest incoming path.
func (p *Progression) Depth(id string) int {
	return p.depth[id]
}

// Stages is the number of distinct depths, 0 for an empty graph.
func (p *Progression) Stages() int {
	if len(p.depth) == 0 {
		return 0
	}
	maxDepth := 0
	for _, d := range p.depth {
		maxDepth = max(maxDepth, d)
	}
	return maxDepth + 1
}

// Feeds lists, sorted, the matches whose sides move on to id.
func (p *Progression) Feeds(id string) []string {
	return slices.Clone(p.feeds[id])
}
