package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// AudioDir keeps synthesized feedback audio as one file per session.
type AudioDir struct {
	Root string
}

// Save writes data as <Root>/<sessionID><ext> and returns the path.
func (a AudioDir) Save(sessionID, ext string, data []byte) (string, error) {
	if sessionID == "" || strings.ContainsAny(sessionID, `/\`) || strings.Contains(sessionID, "..") {
		return "", fmt.Errorf("invalid session id %q", sessionID)
	}
	if err := os.MkdirAll(a.Root, 0o755); err != nil {
		return "", fmt.Errorf("create audio dir: %w", err)
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	path := filepath.Join(a.Root, sessionID+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write audio: %w", err)
	}
	return path, nil
}
