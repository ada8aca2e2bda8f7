package ebitenview

import "time"

var AppendTriangle = appendTriangle

func (g *Game) Advance(now time.Time) error {
	return g.advance(now)
}
