package sloc

// Classifier turns the content of one file into a FileSummary.
// Implementations must be safe for concurrent use by multiple goroutines;
// distinct files are classified independently.
type Classifier interface {
	// Classify counts blank, comment and code lines of content using the
	// grammar registered for languageID. Unknown languages fall back to
	// plain text. Returns an error wrapping ErrUnreadableInput when content
	// cannot be decoded as text.
	Classify(content []byte, languageID string) (FileSummary, error)
}
