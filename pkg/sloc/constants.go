package sloc

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess      = 0  // Counting completed successfully
	ExitGeneralError = 1  // Unknown or unclassified error
	ExitUsageError   = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic        = 3  // Internal panic (unexpected crash)
	ExitConfigError  = 10 // Invalid configuration or flags
	ExitPathNotFound = 11 // Path to count does not exist
	ExitCancelled    = 12 // Interrupted before the batch completed
)

const (
	// DefaultCacheSize is the number of distinct file contents whose
	// summaries are kept by the classification cache.
	DefaultCacheSize = 4096

	// BinarySniffLength is how many leading bytes are inspected for NUL
	// bytes when deciding whether content is text.
	BinarySniffLength = 8000

	// PlainTextLanguage is the language id reported for files whose
	// language has no registered grammar.
	PlainTextLanguage = "text"
)
