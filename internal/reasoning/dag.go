package reasoning

import "github.com/arjunsehgal/vitalis/internal/domain"

// DAGEdge is one adjacency entry: an allowed category-to-category relation
// with its learned weight.
type DAGEdge struct {
	Target   domain.NodeCategory `json:"target"`
	EdgeType domain.EdgeType     `json:"edge_type"`
	Weight   float64             `json:"weight"`
}

// CausalDAG is an adjacency structure over node categories, built once per
// query from persisted edges. Edges whose endpoint categories violate
// CanCause are dropped during construction; invalid data is excluded from
// reasoning, not reported.
type CausalDAG struct {
	adjacency map[domain.NodeCategory][]DAGEdge
}

// NewCausalDAG builds the DAG from a flat edge list.
func NewCausalDAG(edges []domain.CausalEdge) *CausalDAG {
	dag := &CausalDAG{adjacency: make(map[domain.NodeCategory][]DAGEdge)}
	for i := range edges {
		src, dst := edges[i].Categories()
		if !CanCause(src, dst) || src == dst {
			continue
		}
		dag.adjacency[src] = append(dag.adjacency[src], DAGEdge{
			Target:   dst,
			EdgeType: edges[i].EdgeType,
			Weight:   domain.Clamp01(edges[i].CausalStrength),
		})
	}
	return dag
}

// Neighbors returns the adjacency entries for a category.
func (d *CausalDAG) Neighbors(from domain.NodeCategory) []DAGEdge {
	return d.adjacency[from]
}

// TracePaths enumerates all simple paths from the given category to the
// symptom category. A category already on the current path is never
// revisited. An empty result is a normal outcome.
func (d *CausalDAG) TracePaths(from domain.NodeCategory) [][]domain.NodeCategory {
	var paths [][]domain.NodeCategory
	onPath := map[domain.NodeCategory]bool{from: true}
	d.walk(from, []domain.NodeCategory{from}, onPath, &paths)
	return paths
}

func (d *CausalDAG) walk(at domain.NodeCategory, path []domain.NodeCategory, onPath map[domain.NodeCategory]bool, paths *[][]domain.NodeCategory) {
	if at == domain.NodeSymptom {
		found := make([]domain.NodeCategory, len(path))
		copy(found, path)
		*paths = append(*paths, found)
		return
	}
	for _, e := range d.adjacency[at] {
		if onPath[e.Target] {
			continue
		}
		onPath[e.Target] = true
		d.walk(e.Target, append(path, e.Target), onPath, paths)
		onPath[e.Target] = false
	}
}

// PathStrength scores a path as the product of edge weights along its
// steps. A missing edge contributes 0, so a broken path scores exactly 0;
// paths shorter than two nodes score 0 by definition.
func (d *CausalDAG) PathStrength(path []domain.NodeCategory) float64 {
	if len(path) < 2 {
		return 0
	}
	strength := 1.0
	for i := 0; i < len(path)-1; i++ {
		strength *= d.strongestEdge(path[i], path[i+1])
		if strength == 0 {
			return 0
		}
	}
	return strength
}

// strongestEdge returns the largest weight among parallel edges between two
// categories, or 0 when none exists.
func (d *CausalDAG) strongestEdge(from, to domain.NodeCategory) float64 {
	best := 0.0
	for _, e := range d.adjacency[from] {
		if e.Target == to && e.Weight > best {
			best = e.Weight
		}
	}
	return best
}
