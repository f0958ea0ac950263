package system

// Score is the global kill counter.
type Score struct {
	Value int
}

func (s *Score) IncrementScore() {
	s.Value++
}
