package board

import (
	"bytes"

	"github.com/bytedance/sonic"
)

// Patch is a partial element update. Nil fields are left alone. Data
// replaces the whole payload and is ignored when its kind differs from the
// element's.
type Patch struct {
	X        *float64
	Y        *float64
	Width    *float64
	Height   *float64
	Rotation *float64
	ZIndex   *int
	Data     Data
}

// F returns a pointer to v, for building patches inline.
func F(v float64) *float64 { return &v }

func I(v int) *int { return &v }

func (p Patch) IsEmpty() bool {
	return p.X == nil && p.Y == nil && p.Width == nil && p.Height == nil &&
		p.Rotation == nil && p.ZIndex == nil && p.Data == nil
}

func (p Patch) dataApplies(e Element) bool {
	return p.Data != nil && e.Data != nil && p.Data.Kind() == e.Data.Kind()
}

// Apply returns e with every set field of p copied over.
func (p Patch) Apply(e Element) Element {
	if p.X != nil {
		e.X = *p.X
	}
	if p.Y != nil {
		e.Y = *p.Y
	}
	if p.Width != nil {
		e.Width = *p.Width
	}
	if p.Height != nil {
		e.Height = *p.Height
	}
	if p.Rotation != nil {
		e.Rotation = *p.Rotation
	}
	if p.ZIndex != nil {
		e.ZIndex = *p.ZIndex
	}
	if p.dataApplies(e) {
		e.Data = p.Data.clone()
	}
	return e
}

// Changes reports whether applying p would change any field of e. Data is
// compared by its serialized form.
func (p Patch) Changes(e Element) bool {
	switch {
	case p.X != nil && *p.X != e.X,
		p.Y != nil && *p.Y != e.Y,
		p.Width != nil && *p.Width != e.Width,
		p.Height != nil && *p.Height != e.Height,
		p.Rotation != nil && *p.Rotation != e.Rotation,
		p.ZIndex != nil && *p.ZIndex != e.ZIndex:
		return true
	}
	if !p.dataApplies(e) {
		return false
	}
	before, err1 := sonic.ConfigStd.Marshal(e.Data)
	after, err2 := sonic.ConfigStd.Marshal(p.Data)
	if err1 != nil || err2 != nil {
		return true
	}
	return !bytes.Equal(before, after)
}

// Diff builds the patch that turns from into to. Only differing box fields
// are set; Data is set when its serialized form differs.
func Diff(from, to Element) Patch {
	var p Patch
	if from.X != to.X {
		p.X = F(to.X)
	}
	if from.Y != to.Y {
		p.Y = F(to.Y)
	}
	if from.Width != to.Width {
		p.Width = F(to.Width)
	}
	if from.Height != to.Height {
		p.Height = F(to.Height)
	}
	if from.Rotation != to.Rotation {
		p.Rotation = F(to.Rotation)
	}
	if from.ZIndex != to.ZIndex {
		p.ZIndex = I(to.ZIndex)
	}
	if to.Data != nil && (Patch{Data: to.Data}).Changes(from) {
		p.Data = to.Data.clone()
	}
	return p
}
