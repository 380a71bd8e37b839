package pose

import (
	"math"
	"testing"
)

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c Point
		want    int
	}{
		{"right angle", Point{1, 0}, Point{0, 0}, Point{0, 1}, 90},
		{"straight line", Point{1, 0}, Point{0, 0}, Point{-1, 0}, 180},
		{"coincident rays", Point{1, 1}, Point{0, 0}, Point{1, 1}, 0},
		{"acute", Point{1, 0}, Point{0, 0}, Point{1, -1}, 45},
		{"reflex winding reflected", Point{0, 1}, Point{0, 0}, Point{-1, -1}, 135},
		{"offset vertex", Point{0.55, 0.3}, Point{0.58, 0.45}, Point{0.58, 0.6}, 169},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleBetween(tt.a, tt.b, tt.c); got != tt.want {
				t.Errorf("AngleBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAngleBetween_SymmetricInEndpoints(t *testing.T) {
	pts := []Point{
		{0.1, 0.2}, {0.9, 0.4}, {0.5, 0.5}, {0.3, 0.8}, {0.7, 0.05}, {0.5, 0.9},
	}
	for _, a := range pts {
		for _, b := range pts {
			for _, c := range pts {
				if AngleBetween(a, b, c) != AngleBetween(c, b, a) {
					t.Fatalf("angle at %v not symmetric for %v, %v", b, a, c)
				}
			}
		}
	}
}

func TestAngleBetween_Range(t *testing.T) {
	for deg := 0; deg < 360; deg += 7 {
		rad := float64(deg) * math.Pi / 180
		got := AngleBetween(Point{1, 0}, Point{0, 0}, Point{math.Cos(rad), math.Sin(rad)})
		if got < 0 || got > 180 {
			t.Fatalf("angle for %d° out of range: %d", deg, got)
		}
	}
}

func TestAngleBetween_CollinearVertexBetween(t *testing.T) {
	got := AngleBetween(Point{0.2, 0.2}, Point{0.5, 0.5}, Point{0.8, 0.8})
	if got != 180 {
		t.Errorf("got %d, want 180", got)
	}
}

func TestEuclideanDistance(t *testing.T) {
	if d := EuclideanDistance(Point{0, 0}, Point{3, 4}); d != 5 {
		t.Errorf("got %f, want 5", d)
	}
	if d := EuclideanDistance(Point{0.4, 0.4}, Point{0.4, 0.4}); d != 0 {
		t.Errorf("got %f, want 0", d)
	}
}

func TestMidpoint(t *testing.T) {
	got := Midpoint(Point{0.2, 0.4}, Point{0.6, 0.8})
	if math.Abs(got.X-0.4) > 1e-12 || math.Abs(got.Y-0.6) > 1e-12 {
		t.Errorf("got %+v, want {0.4 0.6}", got)
	}
}
