package scoring

import (
	"fmt"
	"strings"
)

// DetectCycles reports every minimal cycle in the dependency graph of a
// batch. Tasks with a zero ID get a 1-based fallback id from their input
// position. Each cycle is the closed path, rotated to start at its smallest
// node id so the result does not depend on traversal order; a self-dependency
// is the single-element path [n]. An empty result means the graph is acyclic.
func DetectCycles(tasks []Task) [][]int {
	// adjacency in input order, deps deduped but order preserved
	adj := make(map[int][]int, len(tasks))
	order := make([]int, 0, len(tasks))
	for i, t := range tasks {
		id := t.ID
		if id == 0 {
			id = i + 1
		}
		if _, ok := adj[id]; !ok {
			order = append(order, id)
		}
		adj[id] = dedupeOrdered(t.Dependencies)
	}

	visited := make(map[int]bool)
	seen := make(map[string]bool)
	var path []int
	var cycles [][]int

	var dfs func(node int)
	dfs = func(node int) {
		for i, p := range path {
			if p != node {
				continue
			}
			// back-edge: path[i:] closes a cycle at node
			cycle := canonicalCycle(path[i:])
			key := cycleKey(cycle)
			if !seen[key] {
				seen[key] = true
				cycles = append(cycles, cycle)
			}
			return
		}
		if visited[node] {
			return
		}
		visited[node] = true
		path = append(path, node)
		for _, dep := range adj[node] {
			dfs(dep)
		}
		path = path[:len(path)-1]
	}

	for _, id := range order {
		if !visited[id] {
			dfs(id)
		}
	}
	return cycles
}

// canonicalCycle rotates the open cycle segment so it starts at its minimum
// node, then closes it by repeating that node. A one-node segment stays [n].
func canonicalCycle(seg []int) []int {
	if len(seg) == 1 {
		return []int{seg[0]}
	}
	minIdx := 0
	for i, v := range seg {
		if v < seg[minIdx] {
			minIdx = i
		}
	}
	out := make([]int, 0, len(seg)+1)
	out = append(out, seg[minIdx:]...)
	out = append(out, seg[:minIdx]...)
	return append(out, seg[minIdx])
}

func cycleKey(cycle []int) string {
	var b strings.Builder
	for i, id := range cycle {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", id)
	}
	return b.String()
}

func dedupeOrdered(ids []int) []int {
	if len(ids) == 0 {
		return nil
	}
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		dup := false
		for _, kept := range out {
			if kept == id {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, id)
		}
	}
	return out
}
