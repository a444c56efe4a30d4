package molecule

import (
	"sort"
	"strconv"
	"strings"
)

// perceiveRings marks ring bonds and atoms, records the smallest ring through
// every ring bond, and collects the set of distinct smallest cycles.  A bond
// is in a ring when it is not a bridge of the graph.
func perceiveRings(m *Molecule) {
	bridges := findBridges(m)
	seen := map[string]bool{}
	m.rings = nil

	for _, b := range m.Bonds {
		if bridges[b.Index] {
			continue
		}
		path := shortestPathAvoiding(m, b.Begin, b.End, b.Index)
		if path == nil {
			continue
		}
		b.InRing = true
		b.SmallestRing = len(path)
		for _, ai := range path {
			m.Atoms[ai].InRing = true
		}
		key := ringKey(path)
		if !seen[key] {
			seen[key] = true
			m.rings = append(m.rings, path)
		}
	}
}

// findBridges runs an iterative Tarjan low-link search and returns the set of
// bridge bond indices.
func findBridges(m *Molecule) map[int]bool {
	n := len(m.Atoms)
	disc := make([]int, n)
	low := make([]int, n)
	for i := range disc {
		disc[i] = -1
	}
	bridges := map[int]bool{}
	timer := 0

	type frame struct {
		atom, viaBond, next int
	}
	for root := 0; root < n; root++ {
		if disc[root] >= 0 {
			continue
		}
		disc[root], low[root] = timer, timer
		timer++
		stack := []frame{{atom: root, viaBond: -1}}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			adj := m.adjacency[top.atom]
			if top.next < len(adj) {
				bi := adj[top.next]
				top.next++
				if bi == top.viaBond {
					continue
				}
				nb := m.Bonds[bi].Other(top.atom)
				if disc[nb] < 0 {
					disc[nb], low[nb] = timer, timer
					timer++
					stack = append(stack, frame{atom: nb, viaBond: bi})
				} else if disc[nb] < low[top.atom] {
					low[top.atom] = disc[nb]
				}
				continue
			}
			done := *top
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				continue
			}
			parent := stack[len(stack)-1].atom
			if low[done.atom] < low[parent] {
				low[parent] = low[done.atom]
			}
			if low[done.atom] > disc[parent] {
				bridges[done.viaBond] = true
			}
		}
	}
	return bridges
}

// shortestPathAvoiding returns the atoms of the shortest path from src to dst
// that does not use bond skip, or nil when none exists.  Neighbours are
// visited in index order so the result is deterministic.
func shortestPathAvoiding(m *Molecule, src, dst, skip int) []int {
	prev := make([]int, len(m.Atoms))
	for i := range prev {
		prev[i] = -2
	}
	prev[src] = -1
	queue := []int{src}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == dst {
			break
		}
		nbs := make([]int, 0, len(m.adjacency[cur]))
		for _, bi := range m.adjacency[cur] {
			if bi != skip {
				nbs = append(nbs, m.Bonds[bi].Other(cur))
			}
		}
		sort.Ints(nbs)
		for _, nb := range nbs {
			if prev[nb] == -2 {
				prev[nb] = cur
				queue = append(queue, nb)
			}
		}
	}
	if prev[dst] == -2 {
		return nil
	}
	var path []int
	for at := dst; at != -1; at = prev[at] {
		path = append(path, at)
	}
	return path
}

func ringKey(path []int) string {
	sorted := append([]int(nil), path...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ",")
}

// RingCount is the cyclomatic number of the graph: the number of independent
// rings.
func (m *Molecule) RingCount() int {
	return len(m.Bonds) - len(m.Atoms) + m.fragments
}

// IsAromaticRing reports whether every atom of ring is aromatic.
func (m *Molecule) IsAromaticRing(ring []int) bool {
	for _, ai := range ring {
		if !m.Atoms[ai].Aromatic {
			return false
		}
	}
	return len(ring) > 0
}

//Personal.AI order the ending
