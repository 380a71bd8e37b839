package pose

import "math"

// MediaPipe pose landmark indices. Only the upper/lower limb joints are
// consumed by metrics extraction; the rest are kept for completeness of the
// wire format.
const (
	Nose          = 0
	LeftShoulder  = 11
	RightShoulder = 12
	LeftElbow     = 13
	RightElbow    = 14
	LeftWrist     = 15
	RightWrist    = 16
	LeftHip       = 23
	RightHip      = 24
	LeftKnee      = 25
	RightKnee     = 26
	LeftAnkle     = 27
	RightAnkle    = 28

	// NumLandmarks is the number of keypoints the detector reports per body.
	NumLandmarks = 33
)

// RequiredIndices lists the landmarks that must be present for Extract to succeed.
var RequiredIndices = []int{
	LeftShoulder, RightShoulder,
	LeftElbow, RightElbow,
	LeftWrist, RightWrist,
	LeftHip, RightHip,
	LeftKnee, RightKnee,
	LeftAnkle, RightAnkle,
}

// Landmark is one normalized keypoint. X and Y are image-relative in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z,omitempty"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Point returns the 2D projection of the landmark.
func (l Landmark) Point() Point {
	return Point{X: l.X, Y: l.Y}
}

// LandmarkSet is the per-frame collection of landmarks for one detected body,
// indexed by anatomical position. Entries may be nil when the detector did
// not report a keypoint.
type LandmarkSet []*Landmark

// At returns the landmark at index i, or nil if absent.
func (s LandmarkSet) At(i int) *Landmark {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// Missing returns the required indices that are absent, in ascending order.
func (s LandmarkSet) Missing() []int {
	var missing []int
	for _, idx := range RequiredIndices {
		if s.At(idx) == nil {
			missing = append(missing, idx)
		}
	}
	return missing
}

// Confidence returns the lowest visibility among the required landmarks.
// Absent landmarks count as zero.
func (s LandmarkSet) Confidence() float64 {
	lowest := math.Inf(1)
	for _, idx := range RequiredIndices {
		l := s.At(idx)
		if l == nil {
			return 0
		}
		lowest = math.Min(lowest, l.Visibility)
	}
	return lowest
}
