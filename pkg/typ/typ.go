package typ

import "image"

// Point
type P struct {
	X, Y int
}

func (p P) Add(x, y int) P {
	return P{X: p.X + x, Y: p.Y + y}
}

func (p P) In(r Rect) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X < r.Max.X && p.Y < r.Max.Y
}

// Rect is half open, Max is excluded.
type Rect struct {
	Min, Max P
}

func R(x0, y0, x1, y1 int) Rect {
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	return Rect{Min: P{X: x0, Y: y0}, Max: P{X: x1, Y: y1}}
}

func FromImage(r image.Rectangle) Rect {
	return R(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

func (r Rect) W() int { return r.Max.X - r.Min.X }
func (r Rect) H() int { return r.Max.Y - r.Min.Y }

// Grow pads every side by q.
func (r Rect) Grow(q int) Rect {
	return Rect{
		Min: P{X: r.Min.X - q, Y: r.Min.Y - q},
		Max: P{X: r.Max.X + q, Y: r.Max.Y + q},
	}
}

func (r Rect) Move(p P) Rect {
	return Rect{Min: r.Min.Add(p.X, p.Y), Max: r.Max.Add(p.X, p.Y)}
}

// Around is the w x h rect centered on p.
func Around(p P, w, h int) Rect {
	return R(p.X-w/2, p.Y-h/2, p.X-w/2+w, p.Y-h/2+h)
}

func (r Rect) Image() image.Rectangle {
	return image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}
