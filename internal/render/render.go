// Package render formats player cards as monospace text artifacts
// suitable for a chat message. It knows nothing about the chat
// platform itself.
package render

import (
	"fmt"
	"strings"

	"bingo-hall/internal/game"
)

const header = "  B    I    N    G    O"

// Card draws the 5x5 board for one card. Marked numbers are shown in
// brackets and the free center reads FREE.
func Card(c game.Card) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	grid := c.Grid()
	for row := 0; row < game.GridSize; row++ {
		cells := make([]string, game.GridSize)
		for col := 0; col < game.GridSize; col++ {
			cells[col] = cell(c, grid[row][col])
		}
		b.WriteString(strings.Join(cells, " "))
		if row < game.GridSize-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// CardBlock wraps the board in a fenced code block for chat embeds.
func CardBlock(c game.Card) string {
	return "```\n" + Card(c) + "\n```"
}

// Draws formats a draw sequence the way a caller reads it out:
// "B-7, N-34, O-75".
func Draws(numbers []int) string {
	if len(numbers) == 0 {
		return "No numbers drawn yet."
	}
	calls := make([]string, len(numbers))
	for i, n := range numbers {
		calls[i] = fmt.Sprintf("%s-%d", game.ColumnLetter(n), n)
	}
	return strings.Join(calls, ", ")
}

func cell(c game.Card, n int) string {
	if n == game.FreeCell {
		return "FREE"
	}
	if c.Marked(n) {
		return fmt.Sprintf("[%2d]", n)
	}
	return fmt.Sprintf(" %2d ", n)
}
