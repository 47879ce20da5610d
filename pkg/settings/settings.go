// Package settings carries build metadata and per-run parameters shared by
// the treex CLI and library packages. Run values travel through the command
// context so loading code can see how the process was invoked without
// reaching back into flag state.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "treex"

// VersionInformation is populated at build time via ldflags and stamped
// onto every log line.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds build metadata: commit hash, semantic version, and
// build timestamp.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// EntryPoint records where this run's input comes from: a file path given
// on the command line, or stdin. Both zero means no input was provided.
type EntryPoint struct {
	FromStdin bool
	Path      string
}

// Run holds the parameters of a single invocation. The CLI fills one in
// from its flags and stores it in the context via IntoContext.
type Run struct {
	MinLogLevel int8
	NoColor     bool
	EntryPoint  EntryPoint
}

// NewCliParams returns run parameters with CLI defaults: info-level
// logging, color on, input undetermined.
func NewCliParams() *Run {
	return &Run{}
}
