package game

import "strings"

const separator = "---------------"

// Render draws the board using the given symbols for each side.
func Render(b *Board, aiSymbol, humanSymbol string) string {
	chars := map[Cell]string{
		Cell(Human): humanSymbol,
		Cell(AI):    aiSymbol,
		Empty:       " ",
	}

	var sb strings.Builder
	sb.WriteString("\n" + separator + "\n")
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			sb.WriteString("| " + chars[b[r][c]] + " |")
		}
		sb.WriteString("\n" + separator + "\n")
	}
	return sb.String()
}
