package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing content directory, config or page)
	ExitDataError   = 3 // Data error (unreadable source, duplicate entries)
)
