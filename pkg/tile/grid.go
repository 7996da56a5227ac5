package tile

import "math"

// FloorMod returns the floored modulus of a and b: the result carries the
// sign of b. This keeps grid arithmetic stable across the projection origin,
// where truncated remainders would flip sign.
//
// Examples:
//   - FloorMod(-408585, 3000) = 2415
//   - FloorMod(2871795, -3000) = -2205
//   - FloorMod(6000, 3000) = 0
func FloorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// Aligned reports whether the point lies exactly on this spec's tile grid.
// Scene corners must be aligned before ingest; anything else means the scene
// was produced against a different grid.
func (s TileSpec) Aligned(x, y float64) bool {
	return FloorMod(x-s.ShiftX, s.TileX) == 0 && FloorMod(y-s.ShiftY, s.TileY) == 0
}

// Snap returns the upper-left corner of the grid tile containing (x, y).
// The x axis grows east and the y axis grows north, so snapping moves west
// and north (TileY is negative).
func (s TileSpec) Snap(x, y float64) (float64, float64) {
	return x - FloorMod(x-s.ShiftX, s.TileX), y - FloorMod(y-s.ShiftY, s.TileY)
}
