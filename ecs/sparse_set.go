package ecs

// SparseSet stores one value per entity slot, densely packed for iteration.
type SparseSet[T any] struct {
	denseIDs    []entityID
	denseValues []T
	sparse      []int
}

// Has returns true if the slot id exists in the set.
func (s *SparseSet[T]) Has(id entityID) bool {
	if s == nil || id == 0 || int(id) > len(s.sparse) {
		return false
	}
	idx := s.sparse[id-1]
	return idx >= 0 && idx < len(s.denseIDs) && s.denseIDs[idx] == id
}

// Get returns the value for id.
func (s *SparseSet[T]) Get(id entityID) (T, bool) {
	if !s.Has(id) {
		var zero T
		return zero, false
	}
	return s.denseValues[s.sparse[id-1]], true
}

// Set inserts or updates the value for id.
func (s *SparseSet[T]) Set(id entityID, v T) {
	if s == nil || id == 0 {
		return
	}
	for int(id) > len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	if s.Has(id) {
		s.denseValues[s.sparse[id-1]] = v
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id-1] = len(s.denseIDs) - 1
}

// Remove deletes the value for id if present. The last element is swapped
// into the hole, so iteration order is not stable across removals.
func (s *SparseSet[T]) Remove(id entityID) {
	if s == nil || !s.Has(id) {
		return
	}
	idx := s.sparse[id-1]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = s.denseIDs[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID-1] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseIDs = s.denseIDs[:last]
	s.denseValues = s.denseValues[:last]
	s.sparse[id-1] = -1
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseIDs)
}

// Values returns the dense value list. Callers must not hold it across Set
// or Remove.
func (s *SparseSet[T]) Values() []T {
	if s == nil {
		return nil
	}
	return s.denseValues
}
