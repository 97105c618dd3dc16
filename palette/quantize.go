package palette

// distSq is the squared Euclidean distance in RGB space
func distSq(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// NearestIndex returns the palette index closest to c
// Entries are scanned in index order and only a strictly smaller distance
// replaces the current best, so ties resolve to the lowest index
func NearestIndex(c RGB) int {
	best := 0
	bestDist := distSq(c, Palette[0].Color)
	for i := 1; i < Size; i++ {
		d := distSq(c, Palette[i].Color)
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// Snap maps c to its nearest palette color
func Snap(c RGB) RGB {
	return Palette[NearestIndex(c)].Color
}
