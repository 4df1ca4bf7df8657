package game

// DrawnSet builds the set view of a draw sequence.
func DrawnSet(drawn []int) map[int]bool {
	set := make(map[int]bool, len(drawn))
	for _, n := range drawn {
		set[n] = true
	}
	return set
}

// HasWon reports whether every number on the card has been drawn. The
// free cell needs no match, so 24 hits complete the card.
func HasWon(c Card, drawn map[int]bool) bool {
	for _, n := range c.Numbers {
		if !drawn[n] {
			return false
		}
	}
	return true
}
