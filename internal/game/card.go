package game

import "math/rand"

const (
	// PoolMax is the highest drawable number.
	PoolMax = 75
	// CardNumbers is how many numbers a card carries. The 25th grid
	// cell is the free center and holds no number.
	CardNumbers = 24
	// GridSize is the side length of the printed card.
	GridSize = 5
)

// FreeCell marks the center position in a card grid.
const FreeCell = 0

type Card struct {
	Numbers []int `json:"numbers"`
	Marks   []int `json:"marks,omitempty"`
	Wins    int   `json:"wins"`
}

// NewCard deals 24 distinct numbers from 1..75 off the shared
// auto-seeded source. A shuffle of the full pool keeps the running
// time fixed regardless of luck.
func NewCard() Card {
	perm := rand.Perm(PoolMax)
	numbers := make([]int, CardNumbers)
	for i := 0; i < CardNumbers; i++ {
		numbers[i] = perm[i] + 1
	}
	return Card{Numbers: numbers}
}

// Has reports whether n is one of the card's 24 numbers.
func (c Card) Has(n int) bool {
	for _, v := range c.Numbers {
		if v == n {
			return true
		}
	}
	return false
}

// Marked reports whether the player has marked n on this card.
func (c Card) Marked(n int) bool {
	for _, v := range c.Marks {
		if v == n {
			return true
		}
	}
	return false
}

// ToggleMark flips the mark on n and reports whether n belongs to the
// card at all. Marks are cosmetic and never consulted by the win check.
func (c *Card) ToggleMark(n int) bool {
	if !c.Has(n) {
		return false
	}
	for i, v := range c.Marks {
		if v == n {
			c.Marks = append(c.Marks[:i], c.Marks[i+1:]...)
			return true
		}
	}
	c.Marks = append(c.Marks, n)
	return true
}

// Grid lays the card's numbers onto the 5x5 board, row-major, with the
// center cell left as FreeCell.
func (c Card) Grid() [GridSize][GridSize]int {
	var grid [GridSize][GridSize]int
	center := GridSize / 2
	i := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if row == center && col == center {
				grid[row][col] = FreeCell
				continue
			}
			if i < len(c.Numbers) {
				grid[row][col] = c.Numbers[i]
				i++
			}
		}
	}
	return grid
}

// ColumnLetter returns the classic caller's letter for a number:
// B 1-15, I 16-30, N 31-45, G 46-60, O 61-75.
func ColumnLetter(n int) string {
	switch {
	case n >= 1 && n <= 15:
		return "B"
	case n <= 30:
		return "I"
	case n <= 45:
		return "N"
	case n <= 60:
		return "G"
	case n <= PoolMax:
		return "O"
	default:
		return "?"
	}
}
