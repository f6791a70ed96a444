// Package termview draws boards and move lists for terminal output.
package termview

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/hailam/chessagent/internal/board"
)

const (
	lightBg = color.BgHiWhite
	darkBg  = color.BgGreen
	lastBg  = color.BgYellow
)

var label = color.New(color.FgHiBlack)

// Options control Render.
type Options struct {
	Flipped  bool       // Black at the bottom
	LastMove board.Move // highlighted when valid
}

// Render writes b to w, one rank per line, with coordinates.
func Render(w io.Writer, b *board.Board, opts Options) error {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		y := row
		if opts.Flipped {
			y = 7 - row
		}
		sb.WriteString(label.Sprintf("%d ", 8-y))
		for col := 0; col < 8; col++ {
			x := col
			if opts.Flipped {
				x = 7 - col
			}
			sb.WriteString(square(b, board.Loc(x, y), opts.LastMove))
		}
		sb.WriteByte('\n')
	}

	sb.WriteString("  ")
	for col := 0; col < 8; col++ {
		x := col
		if opts.Flipped {
			x = 7 - col
		}
		sb.WriteString(label.Sprintf(" %c ", 'a'+x))
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(w, sb.String())
	return err
}

func square(b *board.Board, l board.Location, last board.Move) string {
	bg := darkBg
	if l.IsLight() {
		bg = lightBg
	}
	if last.IsValid() && (l == last.From || l == last.To) {
		bg = lastBg
	}

	p, ok := b.Get(l)
	if !ok {
		return color.New(bg).Sprint("   ")
	}
	fg := color.FgHiWhite
	if p.Color == board.Black {
		fg = color.FgBlack
	}
	return color.New(fg, color.Bold, bg).Sprintf(" %c ", p.Char())
}

// MoveList numbers SAN moves in pairs: "1. e4 e5 2. Nf3". blackFirst
// starts the list with a Black move ("1... e5").
func MoveList(sans []string, firstMove int, blackFirst bool) string {
	if firstMove < 1 {
		firstMove = 1
	}
	var sb strings.Builder
	n := firstMove
	i := 0
	if blackFirst && len(sans) > 0 {
		fmt.Fprintf(&sb, "%d... %s", n, sans[0])
		n++
		i = 1
	}
	for ; i < len(sans); i += 2 {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d. %s", n, sans[i])
		if i+1 < len(sans) {
			sb.WriteString(" " + sans[i+1])
		}
		n++
	}
	return sb.String()
}

// Status formats a side-to-move line with the state, e.g. "White to move
// (Check(White))".
func Status(b *board.Board) string {
	st := b.State()
	if st.Kind == board.Normal {
		return fmt.Sprintf("%s to move", b.Turn())
	}
	if st.IsOver() {
		return st.String()
	}
	return fmt.Sprintf("%s to move (%s)", b.Turn(), st)
}
