package pose

import "math"

// Point is a 2D point in normalized image coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// AngleBetween returns the interior angle at vertex b formed by the rays b→a
// and b→c, in whole degrees within [0,180].
func AngleBetween(a, b, c Point) int {
	radians := math.Atan2(c.Y-b.Y, c.X-b.X) - math.Atan2(a.Y-b.Y, a.X-b.X)
	angle := math.Abs(radians * 180.0 / math.Pi)
	if angle > 180.0 {
		angle = 360 - angle
	}
	return int(math.Round(angle))
}

// EuclideanDistance returns the 2D distance between a and b.
func EuclideanDistance(a, b Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}
