package extract

import "time"

// Extraction phases reported through Progress.Phase.
const (
	PhaseReading    = "reading"
	PhaseDecoding   = "decoding"
	PhaseExporting  = "exporting"
	PhaseEncoding   = "encoding"
	PhaseInstalling = "installing"
	PhaseComplete   = "complete"
)

// Progress contains information about the extraction progress.
// Passed to ProgressCallback during extraction.
type Progress struct {
	// Phase describes the current operation phase:
	//   "reading"    - Reading the executable or library
	//   "decoding"   - Decoding the resource tree
	//   "exporting"  - Writing resource files
	//   "encoding"   - Converting firmware to hex and binary
	//   "installing" - Copying firmware into the firmware directory
	//   "complete"   - Operation completed successfully
	Phase string

	// Current is the number of files handled in this phase so far
	Current int

	// Total is the number of files to handle in this phase
	Total int

	// Percentage is the completion percentage (0.0 to 100.0)
	Percentage float64

	// BytesWritten is the total number of bytes written so far
	BytesWritten int

	// ElapsedTime is the time elapsed since the operation started
	ElapsedTime time.Duration
}

// ProgressCallback is called periodically during extraction to report progress.
// Implementations should return quickly.
//
// Example:
//
//	ex := extract.New(
//	    extract.WithProgressCallback(func(p extract.Progress) {
//	        fmt.Printf("[%s] %.1f%% - %d/%d\n",
//	            p.Phase, p.Percentage, p.Current, p.Total)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the extractor.
// This allows integration with any logging framework.
//
// Example with zap:
//
//	type ZapLogger struct{ s *zap.SugaredLogger }
//	func (l ZapLogger) Debug(msg string, kv ...interface{}) { l.s.Debugw(msg, kv...) }
//	func (l ZapLogger) Info(msg string, kv ...interface{})  { l.s.Infow(msg, kv...) }
//	func (l ZapLogger) Error(msg string, kv ...interface{}) { l.s.Errorw(msg, kv...) }
//
//	ex := extract.New(extract.WithLogger(ZapLogger{zap.S()}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}
