// Package scanner discovers the files to count below a path.
//
// The scanner package is responsible for:
//   - Walking a directory tree (or accepting a single file)
//   - Selecting files by extension, with include and ignore lists
//   - Excluding paths that match doublestar ignore globs
//   - Detecting each file's language from the grammar table
//
// Version-control directories (.git, .hg, .svn) are never descended into.
//
// The scanner is filesystem-agnostic through the filesystem.FileSystemProvider
// interface, enabling both production use with the OS filesystem and testing
// with in-memory filesystems.
package scanner
