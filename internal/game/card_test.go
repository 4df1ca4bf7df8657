package game

import "testing"

func TestNewCardHas24DistinctNumbersInRange(t *testing.T) {
	for i := 0; i < 50; i++ {
		c := NewCard()
		if len(c.Numbers) != CardNumbers {
			t.Fatalf("expected %d numbers, got %d", CardNumbers, len(c.Numbers))
		}
		seen := map[int]bool{}
		for _, n := range c.Numbers {
			if n < 1 || n > PoolMax {
				t.Fatalf("number %d out of range", n)
			}
			if seen[n] {
				t.Fatalf("duplicate number %d", n)
			}
			seen[n] = true
		}
	}
}

func TestNewCardsDealtTogetherDiffer(t *testing.T) {
	// Deals in the same instant must not collapse to the same card.
	a, b := NewCard(), NewCard()
	same := true
	for i := range a.Numbers {
		if a.Numbers[i] != b.Numbers[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("two fresh cards came out identical: %v", a.Numbers)
	}
}

func TestToggleMark(t *testing.T) {
	c := Card{Numbers: []int{5, 10, 15}}
	if c.ToggleMark(7) {
		t.Fatal("expected toggle of foreign number to fail")
	}
	if !c.ToggleMark(10) || !c.Marked(10) {
		t.Fatal("expected 10 marked after toggle")
	}
	if !c.ToggleMark(10) || c.Marked(10) {
		t.Fatal("expected 10 unmarked after second toggle")
	}
}

func TestGridShapeAndFreeCenter(t *testing.T) {
	c := NewCard()
	grid := c.Grid()
	if grid[2][2] != FreeCell {
		t.Fatalf("expected free center, got %d", grid[2][2])
	}
	placed := map[int]bool{}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if row == 2 && col == 2 {
				continue
			}
			n := grid[row][col]
			if n == FreeCell {
				t.Fatalf("unexpected empty cell at %d,%d", row, col)
			}
			if placed[n] {
				t.Fatalf("number %d placed twice", n)
			}
			placed[n] = true
		}
	}
	if len(placed) != CardNumbers {
		t.Fatalf("expected %d placed numbers, got %d", CardNumbers, len(placed))
	}
}

func TestColumnLetter(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "B"}, {15, "B"}, {16, "I"}, {30, "I"}, {31, "N"},
		{45, "N"}, {46, "G"}, {60, "G"}, {61, "O"}, {75, "O"}, {76, "?"},
	}
	for _, tc := range cases {
		if got := ColumnLetter(tc.n); got != tc.want {
			t.Fatalf("ColumnLetter(%d) = %s, want %s", tc.n, got, tc.want)
		}
	}
}
