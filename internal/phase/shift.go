package phase

// circularShift writes src[y*w+x] to dst[((y+ys)%h)*w + (x+xs)%w].
// dst and src must not overlap. Shifts must lie in [0, w] and [0, h].
func circularShift[T any](dst, src []T, w, h, xs, ys int) {
	yy := ys
	for y := 0; y < h; y, yy = y+1, yy+1 {
		if yy >= h {
			yy -= h
		}
		srow := src[y*w : y*w+w]
		drow := dst[yy*w : yy*w+w]
		xx := xs
		for x := 0; x < w; x, xx = x+1, xx+1 {
			if xx >= w {
				xx -= w
			}
			drow[xx] = srow[x]
		}
	}
}

// centerShift moves the zero-frequency sample from the origin to (w/2, h/2).
func centerShift[T any](dst, src []T, w, h int) {
	circularShift(dst, src, w, h, w/2, h/2)
}

// decenterShift undoes centerShift. The ceiling halves matter for odd sizes:
// floor(n/2) + ceil(n/2) == n, so the two shifts compose to the identity.
func decenterShift[T any](dst, src []T, w, h int) {
	circularShift(dst, src, w, h, (w+1)/2, (h+1)/2)
}
