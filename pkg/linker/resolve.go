package linker

import "path/filepath"

// Target computes what a symlink at linkPath should point to so that
// it resolves to buildPath.
//
// An absolute build path is used unmodified. Otherwise the target is
// computed relative to the link file's directory from the actual
// directory depth of the two paths. Combinations a relative target
// cannot express, such as an absolute link path with a relative build
// path, fall back to absolutizing the build path.
func Target(buildPath, linkPath string) string {
	if filepath.IsAbs(buildPath) {
		return buildPath
	}

	if filepath.IsAbs(linkPath) {
		return absOrSelf(buildPath)
	}

	rel, err := filepath.Rel(filepath.Dir(linkPath), buildPath)
	if err != nil {
		return absOrSelf(buildPath)
	}
	return rel
}

func absOrSelf(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
