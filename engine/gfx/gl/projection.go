package glbackend

// ---- tiny mat helpers (column-major, GLSL-style) ----

// ortho maps [l..r]x[b..t] to clip space. Passing b > t gives a top-left
// origin with y growing downward.
func ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// screenProjection covers a logical viewport with the origin at top-left.
func screenProjection(w, h float32) [16]float32 {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return ortho(0, w, h, 0, -1, 1)
}
