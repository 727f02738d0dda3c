package logging

// LogEntry represents a structured log record with fields relevant to
// dataset loading and persistence operations.
type LogEntry struct {
	// Standard fields
	Time     int64
	Severity Severity
	Message  string
	File     string
	Line     int
	Function string

	// Dataset-specific fields
	Dataset string // Family being processed, if any
	Split   string // Split being processed, if any

	// General structured data
	Fields map[string]interface{}
}
