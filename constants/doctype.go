package constants

import "strings"

// DocType selects which synonym table and required-field baseline apply
// to an uploaded tabular document.
type DocType string

const (
	DocTypePO      DocType = "po"
	DocTypeInvoice DocType = "invoice"
)

// TabularExtensions holds the extensions the tabular decoder accepts.
var TabularExtensions = map[string]struct{}{
	"xlsx": {},
	"csv":  {},
}

// StatementExtensions holds the extensions accepted for financial statements.
var StatementExtensions = map[string]struct{}{
	"pdf": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
