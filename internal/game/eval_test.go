package game

import "testing"

func TestHasWonRequiresFullCoverage(t *testing.T) {
	c := Card{Numbers: []int{1, 2, 3}}
	drawn := map[int]bool{1: true, 2: true}
	if HasWon(c, drawn) {
		t.Fatal("expected no win with one number missing")
	}
	drawn[3] = true
	if !HasWon(c, drawn) {
		t.Fatal("expected win once every card number is drawn")
	}
}

func TestHasWonMonotonicUnderSupersets(t *testing.T) {
	c := NewCard()
	drawn := DrawnSet(c.Numbers)
	if !HasWon(c, drawn) {
		t.Fatal("expected win with exact cover")
	}
	for n := 1; n <= PoolMax; n++ {
		drawn[n] = true
		if !HasWon(c, drawn) {
			t.Fatalf("win regressed after adding %d", n)
		}
	}
}

func TestHasWonIgnoresMarks(t *testing.T) {
	c := Card{Numbers: []int{4, 8}, Marks: []int{4, 8}}
	if HasWon(c, map[int]bool{}) {
		t.Fatal("marks must not satisfy the win check")
	}
}

func TestDrawnSet(t *testing.T) {
	set := DrawnSet([]int{7, 7, 12})
	if len(set) != 2 || !set[7] || !set[12] {
		t.Fatalf("unexpected set %v", set)
	}
}
