package battle

import "sort"

// player1FrontCol and player2FrontCol are the two armies' front-line
// columns under range-tier deployment (spec.md §6.1): melee (lowest
// range) units stand closest to the opposing army, ranged units stand
// progressively further back.
const (
	player1FrontCol = 5
	player1BackCol  = 0
	player2FrontCol = 11
	player2BackCol  = 16
)

// centeredRows returns up to count row indices centered on the map's
// middle row, clipped to [0, rows). Used to "center-pack" a deployment
// column. If count exceeds rows, the returned slice is shorter than
// count — callers must fall back to placeNearestFree for the remainder
// rather than indexing past the end.
func centeredRows(rows, count int) []int {
	if count <= 0 {
		return nil
	}
	if count > rows {
		count = rows
	}
	mid := rows / 2
	out := make([]int, 0, count)
	lo, hi := mid, mid
	out = append(out, mid)
	for len(out) < count {
		grew := false
		hi++
		if hi < rows {
			out = append(out, hi)
			grew = true
			if len(out) == count {
				break
			}
		}
		lo--
		if lo >= 0 {
			out = append(out, lo)
			grew = true
		}
		if !grew {
			break
		}
	}
	sort.Ints(out)
	if len(out) > count {
		out = out[:count]
	}
	return out
}

// deployRangeTier places units with no explicit position using range-tier
// deployment: sort by range ascending, assign whole tiers to successive
// columns moving away from the front line, center-pack rows within a
// column, and shuffle row order via the battle RNG (spec.md §6.1). Reports
// false if the board filled up before every unit could be placed — callers
// must treat that as a construction-time validation failure (spec.md §7
// category 1), never a silently dropped unit (spec.md §8 Termination).
func deployRangeTier(m *Map, rng *RNG, units []*Unit, player int) bool {
	sort.SliceStable(units, func(i, j int) bool { return units[i].AttackRange < units[j].AttackRange })

	frontCol, backCol := player1FrontCol, player1BackCol
	dir := -1
	if player == 2 {
		frontCol, backCol = player2FrontCol, player2BackCol
		dir = 1
	}

	ok := true
	i := 0
	col := frontCol
	for i < len(units) {
		tierRange := units[i].AttackRange
		j := i
		for j < len(units) && units[j].AttackRange == tierRange {
			j++
		}
		tier := units[i:j]

		rows := centeredRows(m.Rows, len(tier))
		Shuffle(rng, rows)
		for k, u := range tier {
			// rows may be shorter than tier (more units than the column has
			// rows for); anything past the end of rows goes straight to the
			// whole-board spillover search.
			want := Hex{Col: col, Row: m.Rows / 2}
			if k < len(rows) {
				want.Row = rows[k]
			}
			if k < len(rows) && m.Place(u.ID, want) {
				continue
			}
			if !placeNearestFree(m, u, want) {
				ok = false
			}
		}

		i = j
		if col != backCol {
			col += dir
		}
	}
	return ok
}

// placeNearestFree finds the closest unoccupied in-bounds hex to want and
// places u there, searching outward ring by ring over both rows and
// columns (not just want's own column) so a unit overflowing its
// deployment band still lands somewhere on the board rather than being
// dropped. Reports false only once every hex on the board is occupied.
func placeNearestFree(m *Map, u *Unit, want Hex) bool {
	if m.Place(u.ID, want) {
		return true
	}
	maxRadius := m.Rows
	if Cols > maxRadius {
		maxRadius = Cols
	}
	for radius := 1; radius <= maxRadius; radius++ {
		for row := want.Row - radius; row <= want.Row+radius; row++ {
			for col := want.Col - radius; col <= want.Col+radius; col++ {
				// Only the ring's perimeter; interior hexes were already
				// tried at a smaller radius.
				if row != want.Row-radius && row != want.Row+radius && col != want.Col-radius && col != want.Col+radius {
					continue
				}
				if m.Place(u.ID, Hex{Col: col, Row: row}) {
					return true
				}
			}
		}
	}
	return false
}
