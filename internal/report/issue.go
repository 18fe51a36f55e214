// Package report renders the outcome of a rewrite run as golangci-lint style
// text or as JSON.
package report

// Issue is a single failure in golangci-lint format.
type Issue struct {
	Stage       string   `json:"Stage"` // "parse", "css", "transpile", ...
	Text        string   `json:"Text"`
	Severity    string   `json:"Severity"`
	SourceLines []string `json:"SourceLines"`
	Pos         IssuePos `json:"Pos"`
}

// IssuePos is the location of an issue. Line and Column are 1-based and zero
// when unknown.
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"`
}

// Severity levels.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Stages a file passes through.
const (
	StageRead       = "read"
	StagePreprocess = "preprocess"
	StageParse      = "parse"
	StageCSS        = "css"
	StageTranspile  = "transpile"
	StageFormat     = "format"
	StageWrite      = "write"
)

// File is the outcome for one input file.
type File struct {
	Path    string `json:"path"`
	Output  string `json:"output,omitempty"`
	Classes int    `json:"classes"`
	Tokens  int    `json:"tokens"`
	Changed bool   `json:"changed"`
	Failed  bool   `json:"failed"`
}

// Summary holds the totals of a run.
type Summary struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesProcessed  int `json:"files_processed"`
	FilesSkipped    int `json:"files_skipped"`
	FilesChanged    int `json:"files_changed"`
	FilesFailed     int `json:"files_failed"`
	Tokens          int `json:"tokens"`
}
