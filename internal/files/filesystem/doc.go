// Package filesystem provides filesystem abstraction interfaces and implementations.
//
// This package defines interfaces for file and directory operations, enabling
// testability through in-memory implementations while maintaining compatibility
// with the OS filesystem.
//
// Key interfaces:
//   - FileSystemProvider: Factory for creating directory instances
//   - Directory: Represents a directory that can be traversed
//   - File: Represents an individual file with metadata and content
//   - FileInfo: File metadata similar to os.FileInfo
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
//
// Walks are lexically ordered and honour SkipDir, so callers can prune
// version-control and ignored directories without reading them.
package filesystem
