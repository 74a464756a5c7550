package launch

import "path/filepath"

// FallbackPolicy controls what happens when every lookup source misses.
type FallbackPolicy int

const (
	// FallbackFail reports a *NotFoundError naming each source searched.
	FallbackFail FallbackPolicy = iota
	// FallbackSystemPath returns the /usr/local/bin candidate instead of
	// failing. Earlier revisions of the Zed extension behaved this way.
	FallbackSystemPath
)

func (p FallbackPolicy) String() string {
	switch p {
	case FallbackFail:
		return "fail"
	case FallbackSystemPath:
		return "system-path"
	default:
		return "unknown"
	}
}

// WithFallbackPolicy selects the terminal behaviour of the resolver.
func WithFallbackPolicy(policy FallbackPolicy) Option {
	return func(cfg *extensionConfig) {
		cfg.fallback = policy
	}
}

// Source names recorded in resolution traces and not-found errors, in the
// order the resolver tries them.
const (
	SourceSettings  = "settings"
	SourcePath      = "PATH"
	SourceGoBin     = "GOBIN"
	SourceGoPath    = "GOPATH"
	SourceHome      = "HOME"
	SourceSystemDir = "system"
)

const systemFallbackDir = "/usr/local/bin"

// locateBinary walks the lookup sources in strict priority order; the first
// hit wins and sources are never combined. Paths built from environment
// variables are plain concatenation, not validation: the host checks
// existence when it spawns the process.
func (e *Extension) locateBinary(worktree Worktree) (string, ResolutionTrace, error) {
	trace := NewResolutionTrace(e.cfg.binaryName)

	// A settings fetch failure here is a missed probe, not an error; only
	// the options builder propagates settings problems.
	if settings, err := worktree.LSPSettings(e.cfg.serverID); err == nil && settings.Binary != nil && settings.Binary.Path != "" {
		trace.Record(SourceSettings, settings.Binary.Path, true)
		return settings.Binary.Path, trace, nil
	}
	trace.Record(SourceSettings, "", false)

	if path, ok := worktree.Which(e.cfg.binaryName); ok {
		trace.Record(SourcePath, path, true)
		return path, trace, nil
	}
	trace.Record(SourcePath, "", false)

	env := worktree.ShellEnv()

	if gobin := env["GOBIN"]; gobin != "" {
		candidate := filepath.Join(gobin, e.cfg.binaryName)
		trace.Record(SourceGoBin, candidate, true)
		return candidate, trace, nil
	}
	trace.Record(SourceGoBin, "", false)

	if gopath := env["GOPATH"]; gopath != "" {
		candidate := filepath.Join(gopath, "bin", e.cfg.binaryName)
		trace.Record(SourceGoPath, candidate, true)
		return candidate, trace, nil
	}
	trace.Record(SourceGoPath, "", false)

	if home := env["HOME"]; home != "" {
		candidate := filepath.Join(home, "go", "bin", e.cfg.binaryName)
		trace.Record(SourceHome, candidate, true)
		return candidate, trace, nil
	}
	trace.Record(SourceHome, "", false)

	if e.cfg.fallback == FallbackSystemPath {
		candidate := filepath.Join(systemFallbackDir, e.cfg.binaryName)
		trace.Record(SourceSystemDir, candidate, true)
		return candidate, trace, nil
	}

	return "", trace, &NotFoundError{
		Binary:  e.cfg.binaryName,
		Sources: trace.SourceNames(),
		Install: e.installCommand(),
	}
}

func (e *Extension) installCommand() string {
	return "go install " + e.cfg.installModule + "@latest"
}
