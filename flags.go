package launch

import (
	"slices"
	"strings"
)

// AnalyzerFlags translates the options into the command-line flags the
// analyzer binary understands. Suppression and severity overrides are
// applied client-side by the server process, not forwarded as flags.
func (o AnalyzerOptions) AnalyzerFlags() []string {
	var flags []string
	if o.StrictMode {
		flags = append(flags, "-strict")
	}
	if len(o.CommonKeys) > 0 {
		flags = append(flags, "-common-keys="+strings.Join(o.CommonKeys, ","))
	}
	if o.IgnoreDynamicTemplates {
		flags = append(flags, "-ignore-dynamic-templates")
	}
	return flags
}

// Suppresses reports whether diagnostics with the given code should be
// dropped before publishing. DisableAll suppresses every code.
func (o AnalyzerOptions) Suppresses(code string) bool {
	if o.DisableAll {
		return true
	}
	return slices.Contains(o.SuppressedCodes, code)
}

// SeverityFor returns the configured override severity for code, or fallback
// when no override exists.
func (o AnalyzerOptions) SeverityFor(code, fallback string) string {
	if severity, ok := o.SeverityOverrides[code]; ok && severity != "" {
		return severity
	}
	return fallback
}
