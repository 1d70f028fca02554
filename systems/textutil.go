package systems

import (
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"golang.org/x/image/font"
)

// centeredX returns the dot x that centers s across width.
func centeredX(s string, face font.Face, width float64) int {
	b := text.BoundString(face, s)
	return int((width - float64(b.Dx())) / 2)
}
