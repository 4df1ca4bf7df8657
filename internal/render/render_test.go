package render

import (
	"fmt"
	"strings"
	"testing"

	"bingo-hall/internal/game"
)

func TestCardHasHeaderFiveRowsAndFreeCenter(t *testing.T) {
	c := game.NewCard()
	out := Card(c)
	lines := strings.Split(out, "\n")
	if len(lines) != game.GridSize+1 {
		t.Fatalf("expected header plus %d rows, got %d lines", game.GridSize, len(lines))
	}
	if !strings.Contains(lines[0], "B") || !strings.Contains(lines[0], "O") {
		t.Fatalf("missing column header: %q", lines[0])
	}
	if !strings.Contains(lines[3], "FREE") {
		t.Fatalf("expected FREE on the middle row: %q", lines[3])
	}
}

func TestCardShowsMarks(t *testing.T) {
	c := game.NewCard()
	n := c.Numbers[0]
	c.ToggleMark(n)
	out := Card(c)
	if !strings.Contains(out, fmt.Sprintf("[%2d]", n)) {
		t.Fatalf("expected marked %d in brackets:\n%s", n, out)
	}
}

func TestCardBlockIsFenced(t *testing.T) {
	out := CardBlock(game.NewCard())
	if !strings.HasPrefix(out, "```\n") || !strings.HasSuffix(out, "\n```") {
		t.Fatalf("expected fenced block, got %q", out)
	}
}

func TestDraws(t *testing.T) {
	if got := Draws(nil); got != "No numbers drawn yet." {
		t.Fatalf("unexpected empty text %q", got)
	}
	got := Draws([]int{7, 34, 75})
	if got != "B-7, N-34, O-75" {
		t.Fatalf("unexpected call text %q", got)
	}
}
