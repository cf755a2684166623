package model

import "path/filepath"

// ScaffoldRequest carries the validated inputs of one `new` invocation.
// It is immutable once parsed from the command line.
type ScaffoldRequest struct {
	Folder  string  // Destination directory, must not exist yet
	Release string  // Explicit version string, empty means latest stable
	Fixture Fixture // Optional demo asset bundle
	WorkDir string  // Root for temp artifacts and relative targets
}

// TargetPath resolves the destination directory against the working
// directory. Absolute folders are used as-is.
func (r *ScaffoldRequest) TargetPath() string {
	if filepath.IsAbs(r.Folder) {
		return r.Folder
	}
	return filepath.Join(r.WorkDir, r.Folder)
}
