package gpu

// Camera holds the view transform applied before projection: a pan
// offset in board millimeters and a zoom factor. One board millimeter
// covers one pixel at Zoom=1.
type Camera struct {
	OffsetX, OffsetY float64
	Zoom             float64
}

// NewCamera returns a camera centered on the origin at unit zoom.
func NewCamera() Camera { return Camera{Zoom: 1} }

// ViewProjection returns a column-major 4x4 orthographic matrix mapping
// board millimeters, after the camera's pan and zoom, onto clip space
// for a viewport of the given pixel dimensions.
func (c Camera) ViewProjection(width, height int) [16]float32 {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := float64(width) / 2 / zoom
	halfH := float64(height) / 2 / zoom
	left, right := c.OffsetX-halfW, c.OffsetX+halfW
	bottom, top := c.OffsetY-halfH, c.OffsetY+halfH
	return ortho(float32(left), float32(right), float32(bottom), float32(top))
}

// ortho builds a standard OpenGL orthographic projection with near=-1,
// far=1 (this engine never uses depth; all primitives draw at z=0).
func ortho(left, right, bottom, top float32) [16]float32 {
	var m [16]float32
	m[0] = 2 / (right - left)
	m[5] = 2 / (top - bottom)
	m[10] = -1
	m[12] = -(right + left) / (right - left)
	m[13] = -(top + bottom) / (top - bottom)
	m[15] = 1
	return m
}
