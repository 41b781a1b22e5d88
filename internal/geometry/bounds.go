package geometry

// Box is an axis-aligned bounding box in millimeters. An empty sublayer
// defaults to the zero value per §4.9.
type Box struct {
	MinX, MaxX, MinY, MaxY float64
}

// EmptyBox returns a box in the "nothing included yet" state, ready for
// repeated Include calls.
func EmptyBox() Box {
	return Box{MinX: posInf, MaxX: negInf, MinY: posInf, MaxY: negInf}
}

const (
	posInf = 1e308
	negInf = -1e308
)

// IsEmpty reports whether b has never had a point included.
func (b Box) IsEmpty() bool {
	return b.MinX > b.MaxX || b.MinY > b.MaxY
}

// Include grows b to contain p.
func (b *Box) Include(p Point) {
	if p.X < b.MinX {
		b.MinX = p.X
	}
	if p.X > b.MaxX {
		b.MaxX = p.X
	}
	if p.Y < b.MinY {
		b.MinY = p.Y
	}
	if p.Y > b.MaxY {
		b.MaxY = p.Y
	}
}

// Union grows b to also contain other. An empty box unions away to
// nothing; unioning with an empty box is a no-op.
func (b *Box) Union(other Box) {
	if other.IsEmpty() {
		return
	}
	if b.IsEmpty() {
		*b = other
		return
	}
	if other.MinX < b.MinX {
		b.MinX = other.MinX
	}
	if other.MaxX > b.MaxX {
		b.MaxX = other.MaxX
	}
	if other.MinY < b.MinY {
		b.MinY = other.MinY
	}
	if other.MaxY > b.MaxY {
		b.MaxY = other.MaxY
	}
}

// Normalized returns the zero Box when b is still empty, matching the
// "empty sublayer defaults to (0,0,0,0)" rule in §4.9.
func (b Box) Normalized() Box {
	if b.IsEmpty() {
		return Box{}
	}
	return b
}

// BoundsOf computes the union of every primitive's Bounds().
func BoundsOf(prims []Primitive) Box {
	b := EmptyBox()
	for _, p := range prims {
		b.Union(p.Bounds())
	}
	return b.Normalized()
}
