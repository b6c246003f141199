// Package constants provides shared constants used throughout the boardmerge
// codebase. This includes import limits, reserved identifiers, and file
// permissions that should be consistent across the application.
package constants

// Import limit constants define host-enforced constraints on CSV files.
const (
	// MaxImportFileSize is the maximum accepted CSV file size in bytes (10 MB)
	MaxImportFileSize = 10 << 20

	// ImportFileExtension is the only accepted import file extension
	ImportFileExtension = ".csv"
)

// Reserved identifier constants define names with special meaning on a board
// or inside an import.
const (
	// UncategorizedID is the id and identity key of the singleton default
	// category. It always exists and can never be renamed or deleted.
	UncategorizedID = "uncategorized"

	// UncategorizedName is the display name of the default category
	UncategorizedName = "Uncategorized"

	// IncludeSentinel is the reserved subcategory value that routes a CSV row
	// into the include-term list instead of the subject list
	IncludeSentinel = "_include"

	// ExcludeSentinel is the reserved subcategory value that routes a CSV row
	// into the exclude-term list instead of the subject list
	ExcludeSentinel = "_exclude"
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
