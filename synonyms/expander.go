package synonyms

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/dominikbraun/graph"
	"github.com/eapache/queue"

	"github.com/medvault-org/medvault/normalize"
)

const (
	conceptVertexPrefix = "concept/"
	termVertexPrefix    = "term/"
)

// Expander resolves a free-text term to the set of normalized terms that are
// considered equivalent for search purposes. Expansion is symmetric: querying
// any member of a concept group surfaces the whole group, not just the
// dictionary key.
//
// The dictionary is indexed once at construction. Concept keys and their
// terms form a bipartite graph; the expansion of a term is everything within
// two hops of it (the concepts it belongs to, plus every term of those
// concepts). Precomputing the walk keeps Expand O(1) without changing the
// observable output of a per-call scan.
type Expander struct {
	index map[string][]string
}

func NewDefaultExpander() (*Expander, error) {
	return NewExpander(Dictionary)
}

func NewExpander(dictionary map[string][]string) (*Expander, error) {
	g := graph.New(graph.StringHash)

	for key, members := range dictionary {
		concept := normalize.Text(key)
		if concept == "" {
			return nil, fmt.Errorf("synonym dictionary key %q is empty after normalization", key)
		}
		if err := addVertex(g, conceptVertexPrefix+concept); err != nil {
			return nil, err
		}
		if err := addVertex(g, termVertexPrefix+concept); err != nil {
			return nil, err
		}
		if err := addEdge(g, conceptVertexPrefix+concept, termVertexPrefix+concept); err != nil {
			return nil, err
		}
		for _, member := range members {
			term := normalize.Text(member)
			if term == "" {
				continue
			}
			if err := addVertex(g, termVertexPrefix+term); err != nil {
				return nil, err
			}
			if err := addEdge(g, conceptVertexPrefix+concept, termVertexPrefix+term); err != nil {
				return nil, err
			}
		}
	}

	adjacencyMap, err := g.AdjacencyMap()
	if err != nil {
		return nil, err
	}

	index := make(map[string][]string)
	for vertex := range adjacencyMap {
		term, ok := strings.CutPrefix(vertex, termVertexPrefix)
		if !ok {
			continue
		}
		index[term] = expansionOf(vertex, adjacencyMap)
	}

	return &Expander{index: index}, nil
}

// expansionOf walks two hops out from a term vertex: first to the concepts
// that contain the term, then to every term of those concepts.
func expansionOf(start string, adjacencyMap map[string]map[string]graph.Edge[string]) []string {
	terms := mapset.NewThreadUnsafeSet[string]()
	terms.Add(strings.TrimPrefix(start, termVertexPrefix))

	type hop struct {
		vertex string
		depth  int
	}

	visited := map[string]struct{}{start: {}}
	q := queue.New()
	q.Add(hop{vertex: start})
	for q.Length() != 0 {
		current := q.Remove().(hop)
		if current.depth == 2 {
			continue
		}
		for neighbor := range adjacencyMap[current.vertex] {
			if _, ok := visited[neighbor]; ok {
				continue
			}
			visited[neighbor] = struct{}{}
			if term, ok := strings.CutPrefix(neighbor, termVertexPrefix); ok {
				terms.Add(term)
			} else {
				terms.Add(strings.TrimPrefix(neighbor, conceptVertexPrefix))
			}
			q.Add(hop{vertex: neighbor, depth: current.depth + 1})
		}
	}

	expansion := terms.ToSlice()
	slices.Sort(expansion)
	return expansion
}

// Expand returns the normalized input together with every term of the
// concept groups it belongs to. Unknown terms expand to themselves; input
// that normalizes to the empty string expands to nothing.
func (e *Expander) Expand(term string) []string {
	normalized := normalize.Text(term)
	if normalized == "" {
		return nil
	}
	if expansion, ok := e.index[normalized]; ok {
		return slices.Clone(expansion)
	}
	return []string{normalized}
}

func addVertex(g graph.Graph[string, string], v string) error {
	if err := g.AddVertex(v); err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}
	return nil
}

func addEdge(g graph.Graph[string, string], a, b string) error {
	if err := g.AddEdge(a, b); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return err
	}
	return nil
}
