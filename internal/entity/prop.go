package entity

import (
	"github.com/vovakirdan/isoworld/internal/core"
	"github.com/vovakirdan/isoworld/internal/grid"
)

// PropKind enumerates the static scenery objects.
type PropKind int

const (
	PropRock PropKind = iota // walkable, raises the surface by one level
	PropTree                 // blocks its column
)

// String returns the prop's name.
func (k PropKind) String() string {
	switch k {
	case PropRock:
		return "rock"
	case PropTree:
		return "tree"
	default:
		return "prop"
	}
}

// NewProp creates a scenery object of the given kind at p.
func NewProp(ctx *Context, p grid.Pos, kind PropKind) *WorldObject {
	switch kind {
	case PropTree:
		return NewWorldObject(ctx, p, ObjectOptions{
			Height:    2,
			Glyph:     '♣',
			Color:     core.ColorDarkGreen,
			Footprint: core.NewRect(0, -1, 1, 2),
		})
	default:
		return NewWorldObject(ctx, p, ObjectOptions{
			Height:   1,
			Walkable: true,
			Glyph:    '▪',
			Color:    core.ColorBrown,
		})
	}
}
