package utils

const (
	// IgnoreFileName is the name of the project-local ignore file.
	IgnoreFileName = ".cdigestignore"
	// ConfigFileName is the name of the optional application configuration file.
	ConfigFileName = ".cdigest.yaml"
	// GitDirectoryName is the name of the Git repository metadata directory.
	GitDirectoryName = ".git"
	// NonTextContentSentinel replaces the content of binary files in the tree model.
	NonTextContentSentinel = "[Non-text file]"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
	// ApplicationExecutionFailedMessage reports an application failure at top level.
	ApplicationExecutionFailedMessage = "application execution failed"
)
