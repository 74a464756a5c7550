package launch

import "time"

// Defaults for the mtlog-analyzer integration this library was extracted
// from. Hosts embedding a different analyzer override them via options.
const (
	DefaultServerID      = "mtlog-analyzer"
	DefaultBinaryName    = "mtlog-lsp"
	DefaultInstallModule = "github.com/willibrandon/mtlog/cmd/mtlog-lsp"
)

// Extension is the instance handle the host threads through both entry
// points. It carries the only mutable state the library owns: the binary
// path cached after the first successful resolution. The cache is written
// once per process lifetime and never re-validated, even if the binary later
// disappears.
type Extension struct {
	cfg              extensionConfig
	cachedBinaryPath string
}

// New constructs an Extension with an empty binary-path cache.
func New(opts ...Option) *Extension {
	return &Extension{cfg: applyOptions(opts)}
}

// ServerID returns the language-server identifier used for settings lookups.
func (e *Extension) ServerID() string {
	return e.cfg.serverID
}

// BinaryName returns the canonical binary name being resolved.
func (e *Extension) BinaryName() string {
	return e.cfg.binaryName
}

// CachedBinaryPath returns the cached resolution result, or the empty string
// when no resolution has succeeded yet.
func (e *Extension) CachedBinaryPath() string {
	return e.cachedBinaryPath
}

// LanguageServerCommand returns the launch descriptor for the language
// server, resolving the binary on first use and serving the cached path on
// every later call regardless of environment changes.
func (e *Extension) LanguageServerCommand(worktree Worktree) (Command, error) {
	if e.cachedBinaryPath != "" {
		return e.launchCommand(e.cachedBinaryPath), nil
	}

	start := time.Now()
	path, trace, err := e.locateBinary(worktree)
	e.resolverLogger().LogResolution(ResolveLogEvent{
		Binary:   e.cfg.binaryName,
		Path:     path,
		Sources:  trace.SourceNames(),
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return Command{}, err
	}

	e.cachedBinaryPath = path
	return e.launchCommand(path), nil
}

func (e *Extension) launchCommand(path string) Command {
	return Command{
		Command: path,
		Args:    []string{},
		Env:     map[string]string{},
	}
}
