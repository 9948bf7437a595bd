package colors

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Black    = Color{0, 0, 0, 1}
	Yellow   = Color{1, 1, 0, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
	Accent   = Color{0.95, 0.45, 0.20, 1}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Lerp blends a toward b; t is clamped to [0..1].
func Lerp(a, b Color, t float32) Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	var out Color
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// Scale multiplies the RGB channels by k, leaving alpha untouched.
func (c Color) Scale(k float32) Color {
	c[0] *= k
	c[1] *= k
	c[2] *= k
	return c
}
