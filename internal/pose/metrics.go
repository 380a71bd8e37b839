package pose

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMissingLandmarks is matched by every *MissingLandmarksError.
var ErrMissingLandmarks = errors.New("missing landmarks")

// MissingLandmarksError reports the required indices absent from a frame.
type MissingLandmarksError struct {
	Indices []int
}

func (e *MissingLandmarksError) Error() string {
	idx := make([]string, len(e.Indices))
	for i, v := range e.Indices {
		idx[i] = strconv.Itoa(v)
	}
	return fmt.Sprintf("missing landmarks: %s", strings.Join(idx, ","))
}

func (e *MissingLandmarksError) Is(target error) bool { return target == ErrMissingLandmarks }

// Angles holds joint angles in whole degrees.
type Angles struct {
	RightElbow    int `json:"rightElbow"`
	LeftElbow     int `json:"leftElbow"`
	RightShoulder int `json:"rightShoulder"`
	LeftShoulder  int `json:"leftShoulder"`
}

// Alignments holds torso alignment scores.
type Alignments struct {
	ShoulderHip float64 `json:"shoulderHipAlignment"`
}

// Center is the simplified center of gravity (hip midpoint) and its
// horizontal deviation from the middle of the frame.
type Center struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Deviation float64 `json:"deviation"`
}

// Distances holds stance scores.
type Distances struct {
	Foot          float64 `json:"footDistance"`
	PostureHeight float64 `json:"postureHeight"`
}

// Metrics is the biomechanical snapshot of one frame. Percentage-like fields
// are dimensionless scores on a roughly 0–100 scale, not true percentages.
type Metrics struct {
	Angles     Angles     `json:"angles"`
	Alignments Alignments `json:"alignments"`
	Center     Center     `json:"center"`
	Distances  Distances  `json:"distances"`
}

// Extract computes Metrics from a landmark set. It returns a
// *MissingLandmarksError if any required index is absent.
func Extract(s LandmarkSet) (Metrics, error) {
	if missing := s.Missing(); len(missing) > 0 {
		return Metrics{}, &MissingLandmarksError{Indices: missing}
	}

	p := func(i int) Point { return s[i].Point() }

	var m Metrics

	m.Angles.RightElbow = AngleBetween(p(RightShoulder), p(RightElbow), p(RightWrist))
	m.Angles.LeftElbow = AngleBetween(p(LeftShoulder), p(LeftElbow), p(LeftWrist))
	m.Angles.RightShoulder = AngleBetween(p(RightElbow), p(RightShoulder), p(RightHip))
	m.Angles.LeftShoulder = AngleBetween(p(LeftElbow), p(LeftShoulder), p(LeftHip))

	shoulderMid := Midpoint(p(LeftShoulder), p(RightShoulder))
	hipMid := Midpoint(p(LeftHip), p(RightHip))
	kneeMid := Midpoint(p(LeftKnee), p(RightKnee))

	m.Alignments.ShoulderHip = math.Abs(shoulderMid.X-hipMid.X) * 100

	m.Center.X = hipMid.X
	m.Center.Y = hipMid.Y
	m.Center.Deviation = math.Abs(0.5-hipMid.X) * 100

	m.Distances.Foot = EuclideanDistance(p(LeftAnkle), p(RightAnkle)) * 100
	m.Distances.PostureHeight = math.Abs(kneeMid.Y-shoulderMid.Y) * 100

	return m, nil
}
