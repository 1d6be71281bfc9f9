package resolution

import (
	"slices"

	"github.com/roach88/issuestate/internal/state"
)

// dependencyGraph maps a state name to the names of its relation targets.
type dependencyGraph map[string][]string

// buildDependencyGraph keeps only edges between members of states.
func buildDependencyGraph[I any](states []*state.State[I]) (dependencyGraph, []string) {
	graph := make(dependencyGraph, len(states))
	names := state.Names(states)
	for _, s := range states {
		edges := []string{}
		for target := range s.Relations() {
			if _, ok := slices.BinarySearch(names, target.Name()); ok {
				edges = append(edges, target.Name())
			}
		}
		graph[s.Name()] = edges
	}
	return graph, names
}

// findCycle returns one cycle among states, first node repeated at the end.
// states must be sorted by name. Nodes are visited in name order so the
// reported cycle is stable across runs.
func findCycle[I any](states []*state.State[I]) []string {
	graph, names := buildDependencyGraph(states)
	for _, scc := range tarjanSCC(graph, names) {
		if len(scc) > 1 || hasSelfLoop(scc[0], graph) {
			return reconstructCyclePath(scc, graph)
		}
	}
	return nil
}

func hasSelfLoop(node string, graph dependencyGraph) bool {
	return slices.Contains(graph[node], node)
}

// tarjanSCC finds strongly connected components, visiting roots in the order
// given. Components are emitted in reverse topological order, so the first
// cyclic one is a cycle nothing else in the remainder has to wait on.
func tarjanSCC(graph dependencyGraph, order []string) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range graph[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range order {
		if _, visited := indices[node]; !visited {
			strongConnect(node)
		}
	}
	return sccs
}

// reconstructCyclePath walks edges inside the component from its smallest
// name until it returns to the start.
func reconstructCyclePath(scc []string, graph dependencyGraph) []string {
	members := slices.Clone(scc)
	slices.Sort(members)
	start := members[0]

	if len(members) == 1 {
		return []string{start, start}
	}

	// Breadth-first search for the shortest way back to start.
	prev := map[string]string{}
	queue := []string{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, next := range graph[current] {
			if _, ok := slices.BinarySearch(members, next); !ok {
				continue
			}
			if next == start {
				path := []string{start}
				for node := current; node != start; node = prev[node] {
					path = append(path, node)
				}
				path = append(path, start)
				slices.Reverse(path[1 : len(path)-1])
				return path
			}
			if _, seen := prev[next]; seen || next == start {
				continue
			}
			prev[next] = current
			queue = append(queue, next)
		}
	}
	return []string{start}
}
