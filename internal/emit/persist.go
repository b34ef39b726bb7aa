// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/orca-compiler/pkg/types"
)

// DestinationError reports an unusable persist destination: a missing or
// non-directory path, or a directory that cannot be written. No artifact is
// left behind when persist fails.
type DestinationError struct {
	Dir string
	Err error
}

func (e *DestinationError) Error() string {
	return fmt.Sprintf("destination %q: %v", e.Dir, e.Err)
}

func (e *DestinationError) Unwrap() error { return e.Err }

// Persist writes the IR as a YAML artifact under dir and returns the final
// path. A filename without an extension gets ".yaml" appended. The artifact
// is written to a temporary file in the destination directory and renamed
// into place, so a failed persist never leaves a partial artifact.
// Persisting the same IR to the same destination twice yields byte-identical
// files.
func Persist(ir *types.NetworkIR, dir, filename string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", &DestinationError{Dir: dir, Err: err}
	}
	if !info.IsDir() {
		return "", &DestinationError{Dir: dir, Err: fmt.Errorf("not a directory")}
	}

	if filepath.Ext(filename) == "" {
		filename += ".yaml"
	}
	path := filepath.Join(dir, filename)

	data, err := yaml.Marshal(ir)
	if err != nil {
		return "", fmt.Errorf("marshaling IR: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".orca-*.tmp")
	if err != nil {
		return "", &DestinationError{Dir: dir, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", &DestinationError{Dir: dir, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", &DestinationError{Dir: dir, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return "", &DestinationError{Dir: dir, Err: err}
	}

	return path, nil
}

// Load reads an artifact written by Persist and reconstructs the IR. The
// loaded IR is validated, so a reloaded artifact is always internally
// consistent.
func Load(path string) (*types.NetworkIR, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact: %w", err)
	}

	var ir types.NetworkIR
	if err := yaml.Unmarshal(data, &ir); err != nil {
		return nil, fmt.Errorf("parsing artifact %s: %w", path, err)
	}
	if err := ir.Validate(); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", path, err)
	}
	return &ir, nil
}
