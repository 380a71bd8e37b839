// Package recording reads recorded landmark streams and replays them into a
// capture cell in place of a live pose detector.
//
// A recording is JSON Lines, one detector result per line:
//
//	{"t": 0, "landmarks": [{"x": 0.5, "y": 0.2, "visibility": 0.98}, null, ...], "image": "frames/0000.jpg"}
//
// t is the offset in milliseconds from the start of the stream. image is
// optional and relative to the recording file.
package recording

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/sensei/internal/pose"
)

// ErrEmpty is returned for a recording with no frames.
var ErrEmpty = errors.New("recording has no frames")

// Frame is one recorded detector result.
type Frame struct {
	T         int64            `json:"t"`
	Landmarks pose.LandmarkSet `json:"landmarks"`
	Image     string           `json:"image,omitempty"`
}

// Recording is a parsed landmark stream.
type Recording struct {
	Frames []Frame
	// Dir resolves relative image paths.
	Dir string
}

// LineError reports a malformed line.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }

func (e *LineError) Unwrap() error { return e.Err }

// Load reads and validates the recording at path.
func Load(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	return Parse(f, filepath.Dir(path))
}

// Parse reads a JSON Lines recording. Blank lines are ignored. Offsets must
// not decrease.
func Parse(r io.Reader, dir string) (*Recording, error) {
	validator, err := frameValidator()
	if err != nil {
		return nil, fmt.Errorf("compile frame schema: %w", err)
	}

	rec := &Recording{Dir: dir}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
		if err != nil {
			return nil, &LineError{Line: line, Err: fmt.Errorf("invalid JSON: %w", err)}
		}
		if err := validator.Validate(parsed); err != nil {
			return nil, &LineError{Line: line, Err: fmt.Errorf("schema validation failed: %w", err)}
		}

		var f Frame
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, &LineError{Line: line, Err: err}
		}
		if n := len(rec.Frames); n > 0 && f.T < rec.Frames[n-1].T {
			return nil, &LineError{Line: line, Err: fmt.Errorf("offset %d before previous offset %d", f.T, rec.Frames[n-1].T)}
		}
		rec.Frames = append(rec.Frames, f)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	if len(rec.Frames) == 0 {
		return nil, ErrEmpty
	}
	return rec, nil
}

// ImagePath resolves the image reference of f, or "" when it has none.
func (r *Recording) ImagePath(f Frame) string {
	if f.Image == "" {
		return ""
	}
	if filepath.IsAbs(f.Image) {
		return f.Image
	}
	return filepath.Join(r.Dir, f.Image)
}

// Last returns the last frame whose landmarks meet minConfidence and carry
// every required index.
func (r *Recording) Last(minConfidence float64) (Frame, bool) {
	for i := len(r.Frames) - 1; i >= 0; i-- {
		f := r.Frames[i]
		if len(f.Landmarks.Missing()) == 0 && f.Landmarks.Confidence() >= minConfidence {
			return f, true
		}
	}
	return Frame{}, false
}
