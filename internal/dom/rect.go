package dom

// Rect is a resolved layout rectangle in viewport coordinates. The edge
// fields duplicate x/y/width/height the way DOMRect does on the wire.
type Rect struct {
	X      float64 `yaml:"x"      json:"x"`
	Y      float64 `yaml:"y"      json:"y"`
	Width  float64 `yaml:"width"  json:"width"`
	Height float64 `yaml:"height" json:"height"`
	Top    float64 `yaml:"top"    json:"top"`
	Right  float64 `yaml:"right"  json:"right"`
	Bottom float64 `yaml:"bottom" json:"bottom"`
	Left   float64 `yaml:"left"   json:"left"`
}

// NewRect builds a Rect from origin and size, filling the derived edges.
func NewRect(x, y, w, h float64) Rect {
	return Rect{
		X: x, Y: y, Width: w, Height: h,
		Top: y, Right: x + w, Bottom: y + h, Left: x,
	}
}

// Center returns the rectangle's midpoint.
func (r Rect) Center() (x, y float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Contains reports whether the point lies inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// Intersects reports whether the two rectangles overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.Left < o.Right && o.Left < r.Right && r.Top < o.Bottom && o.Top < r.Bottom
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	left := min(r.Left, o.Left)
	top := min(r.Top, o.Top)
	right := max(r.Right, o.Right)
	bottom := max(r.Bottom, o.Bottom)
	return NewRect(left, top, right-left, bottom-top)
}

// Viewport is a best-effort snapshot of the page's visual viewport plus the
// document's client and scroll extents. Read fresh on every call.
type Viewport struct {
	Height       float64 `yaml:"height"       json:"height"`
	Width        float64 `yaml:"width"        json:"width"`
	OffsetLeft   float64 `yaml:"offsetLeft"   json:"offsetLeft"`
	OffsetTop    float64 `yaml:"offsetTop"    json:"offsetTop"`
	PageLeft     float64 `yaml:"pageLeft"     json:"pageLeft"`
	PageTop      float64 `yaml:"pageTop"      json:"pageTop"`
	Scale        float64 `yaml:"scale"        json:"scale"`
	ClientWidth  float64 `yaml:"clientWidth"  json:"clientWidth"`
	ClientHeight float64 `yaml:"clientHeight" json:"clientHeight"`
	ScrollWidth  float64 `yaml:"scrollWidth"  json:"scrollWidth"`
	ScrollHeight float64 `yaml:"scrollHeight" json:"scrollHeight"`
}
