package reorder

// Move removes draggedID from seq and reinserts it at targetID's original
// index. Items between the two positions shift by one. The input is never
// modified. ok is false, and a copy of seq is returned, when the ids are equal
// or either one is missing.
func Move(seq []string, draggedID, targetID string) ([]string, bool) {
	return MoveFunc(seq, func(id string) string { return id }, draggedID, targetID)
}

// MoveFunc is Move over any element type keyed by idOf.
func MoveFunc[T any](seq []T, idOf func(T) string, draggedID, targetID string) ([]T, bool) {
	out := append([]T(nil), seq...)
	if draggedID == "" || targetID == "" || draggedID == targetID {
		return out, false
	}
	from, to := -1, -1
	for i, item := range seq {
		switch idOf(item) {
		case draggedID:
			from = i
		case targetID:
			to = i
		}
	}
	if from < 0 || to < 0 {
		return out, false
	}
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{moved}, out[to:]...)...)
	return out, true
}

// Arrange returns items ordered by ids. Items whose id is not listed keep
// their relative order after the listed ones.
func Arrange[T any](items []T, idOf func(T) string, ids []string) []T {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	out := make([]T, len(ids), len(items))
	filled := make([]bool, len(ids))
	var rest []T
	for _, item := range items {
		i, ok := pos[idOf(item)]
		if !ok || filled[i] {
			rest = append(rest, item)
			continue
		}
		out[i] = item
		filled[i] = true
	}
	compact := out[:0]
	for i := range out {
		if filled[i] {
			compact = append(compact, out[i])
		}
	}
	return append(compact, rest...)
}
