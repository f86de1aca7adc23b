package battle

import "math"

// Unreachable is the path length returned when no path exists between two
// hexes, matching spec.md §4.1's "path length to an unreachable hex is +inf".
const Unreachable = math.MaxInt32

// ShortestPath runs a breadth-first search from src to dst over hexes that
// are either an endpoint or currently unoccupied (spec.md §4.1). It returns
// the path length and the first step to take, or (Unreachable, Hex{}, false)
// if no path exists. Neighbor enumeration always follows the fixed
// clockwise-from-NE order (hex.go) so ties on the first step are
// deterministic across replays.
func ShortestPath(m *Map, src, dst Hex) (length int, firstStep Hex, ok bool) {
	if src == dst {
		return 0, src, true
	}
	if !m.InBounds(src) || !m.InBounds(dst) {
		return Unreachable, Hex{}, false
	}

	type node struct {
		h     Hex
		first Hex
	}

	visited := map[Hex]bool{src: true}
	queue := []node{{h: src, first: Hex{}}}
	dist := map[Hex]int{src: 0}

	passable := func(h Hex) bool {
		if h == dst {
			return true
		}
		_, occupied := m.Occupant(h)
		return !occupied
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, nb := range cur.h.Neighbors() {
			if !m.InBounds(nb) || visited[nb] {
				continue
			}
			if !passable(nb) {
				continue
			}
			visited[nb] = true
			first := cur.first
			if cur.h == src {
				first = nb
			}
			dist[nb] = dist[cur.h] + 1
			if nb == dst {
				return dist[nb], first, true
			}
			queue = append(queue, node{h: nb, first: first})
		}
	}
	return Unreachable, Hex{}, false
}

// ClosestEnemy returns the living enemy unit reachable by the shortest BFS
// path from src, breaking ties by lowest UnitID (spec.md §4.7 step 5c).
func ClosestEnemy(m *Map, units *UnitSet, src Hex, player int) (target *Unit, pathLen int, firstStep Hex, found bool) {
	best := Unreachable
	var bestUnit *Unit
	var bestStep Hex
	for _, u := range units.AliveEnemiesOf(player) {
		h, ok := m.PositionOf(u.ID)
		if !ok {
			continue
		}
		length, step, reachable := ShortestPath(m, src, h)
		if !reachable {
			continue
		}
		if length < best || (length == best && (bestUnit == nil || u.ID < bestUnit.ID)) {
			best = length
			bestUnit = u
			bestStep = step
		}
	}
	if bestUnit == nil {
		return nil, Unreachable, Hex{}, false
	}
	return bestUnit, best, bestStep, true
}
