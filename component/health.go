package component

// Health is a reusable health component for any entity that can take damage.
type Health struct {
	Max     int
	Current int
	IFrames int

	OnDamage func(h *Health, amount int, source any)
	OnDeath  func(h *Health, source any)
}

// NewHealth creates a Health component with max/current initialized.
func NewHealth(max int) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && h.Current > 0
}

// IsDead reports whether health has reached zero.
func (h *Health) IsDead() bool {
	return !h.IsAlive()
}

// ApplyDamage applies damage if not in i-frames. Current never drops below
// zero. Returns true if damage was applied.
func (h *Health) ApplyDamage(amount int, source any) bool {
	if h == nil || h.Current <= 0 || h.IFrames > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, amount, source)
	}
	if h.Current == 0 && h.OnDeath != nil {
		h.OnDeath(h, source)
	}
	return true
}

// StartIFrames sets invulnerability frames.
func (h *Health) StartIFrames(frames int) {
	if h == nil || frames <= 0 {
		return
	}
	h.IFrames = frames
}

// Tick advances the i-frame timer by one frame.
func (h *Health) Tick() {
	if h == nil || h.IFrames <= 0 {
		return
	}
	h.IFrames--
}
