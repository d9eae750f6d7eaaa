// Package filesystem provides the filesystem seam for dotweave.
//
// The FS interface covers exactly the operations the tree traversal
// needs. Production code uses the OS implementation; tests may use the
// afero-backed one.
package filesystem
