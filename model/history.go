package model

const historySize = 5

// History keeps the hashes of recent generations to spot still lifes and short cycles
type History struct {
	hashes []string
}

// Record adds the current state of u and drops the oldest entry once full
func (h *History) Record(u *Universe) {
	h.hashes = append(h.hashes, u.Hash())
	if len(h.hashes) > historySize {
		h.hashes = h.hashes[1:]
	}
}

// IsStagnant reports whether u repeats one of the last three recorded states
func (h *History) IsStagnant(u *Universe) bool {
	if len(h.hashes) < 3 {
		return false
	}

	current := u.Hash()
	for _, prev := range h.hashes[len(h.hashes)-3:] {
		if prev == current {
			return true
		}
	}
	return false
}

// Reset forgets all recorded states
func (h *History) Reset() {
	h.hashes = nil
}
