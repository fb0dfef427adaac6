// Package project handles the per-project configuration file .haxerc,
// a small JSON file pinning the compiler version and library resolution
// mode for the workspace.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gitlab.com/tozd/go/errors"
)

// RcFileName is the name of the per-project configuration file.
const RcFileName = ".haxerc"

// Rc is the parsed project configuration.
type Rc struct {
	Version     string `json:"version,omitempty"`
	ResolveLibs string `json:"resolveLibs,omitempty"`
}

// Load reads the project configuration from the workspace root. A
// missing file is not an error and yields the zero value.
func Load(projectRoot string) (*Rc, error) {
	data, err := os.ReadFile(filepath.Join(projectRoot, RcFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Rc{}, nil
		}
		return nil, errors.Errorf("reading %s: %w", RcFileName, err)
	}

	var rc Rc
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil, errors.Errorf("parsing %s: %w", RcFileName, err)
	}
	return &rc, nil
}

// SetVersion updates the pinned compiler version in place, preserving
// any other keys the file carries.
func SetVersion(projectRoot string, version string) error {
	path := filepath.Join(projectRoot, RcFileName)

	content, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Errorf("reading %s: %w", RcFileName, err)
		}
		content = []byte("{}")
	}

	updated, err := sjson.SetBytes(content, "version", version)
	if err != nil {
		return errors.Errorf("updating %s: %w", RcFileName, err)
	}

	if err := os.WriteFile(path, pretty.Pretty(updated), 0o644); err != nil {
		return errors.Errorf("writing %s: %w", RcFileName, err)
	}
	return nil
}
