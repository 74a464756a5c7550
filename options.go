package launch

import (
	"github.com/goliatone/go-lsplaunch/internal/hydrate"
	layering "github.com/goliatone/go-lsplaunch/layering"
)

// AnalyzerOptions is the flat configuration document the analyzer process
// receives once at startup. Field tags match the wire keys the server
// expects; fields left unset fall back to the documented defaults.
type AnalyzerOptions struct {
	SuppressedCodes        []string          `json:"suppressedCodes"`
	SeverityOverrides      map[string]string `json:"severityOverrides"`
	DisableAll             bool              `json:"disableAll"`
	CommonKeys             []string          `json:"commonKeys"`
	StrictMode             bool              `json:"strictMode"`
	IgnoreDynamicTemplates bool              `json:"ignoreDynamicTemplates"`
}

// DefaultAnalyzerOptions returns the documented default for every recognized
// key: empty collections and disabled toggles.
func DefaultAnalyzerOptions() AnalyzerOptions {
	return AnalyzerOptions{
		SuppressedCodes:   []string{},
		SeverityOverrides: map[string]string{},
		CommonKeys:        []string{},
	}
}

// Document renders the options as the startup payload sent to the server.
// Every recognized key is present; collections are never nil.
func (o AnalyzerOptions) Document() map[string]any {
	suppressed := o.SuppressedCodes
	if suppressed == nil {
		suppressed = []string{}
	}
	overrides := o.SeverityOverrides
	if overrides == nil {
		overrides = map[string]string{}
	}
	commonKeys := o.CommonKeys
	if commonKeys == nil {
		commonKeys = []string{}
	}
	return map[string]any{
		"suppressedCodes":        suppressed,
		"severityOverrides":      overrides,
		"disableAll":             o.DisableAll,
		"commonKeys":             commonKeys,
		"strictMode":             o.StrictMode,
		"ignoreDynamicTemplates": o.IgnoreDynamicTemplates,
	}
}

// InitializationOptions builds the startup payload for the language server
// from the worktree's current settings snapshot. The result is never cached:
// settings may change between server restarts within one session.
//
// Precedence is strict and non-merging. An initialization_options
// sub-document passes through untouched, ignoring the legacy settings
// sub-document entirely; otherwise the legacy document is decoded (unknown
// keys dropped silently) and layered over the defaults.
func (e *Extension) InitializationOptions(worktree Worktree) (map[string]any, error) {
	settings, err := worktree.LSPSettings(e.cfg.serverID)
	if err != nil {
		return nil, wrapSettingsError(e.cfg.serverID, err)
	}

	if settings.InitializationOptions != nil {
		return settings.InitializationOptions, nil
	}

	legacy := settings.Settings
	if legacy == nil {
		legacy = map[string]any{}
	}

	decoder := hydrate.NewDecoder[AnalyzerOptions]()
	decoded, err := decoder.Decode(hydrate.Context{Server: e.cfg.serverID}, legacy)
	if err != nil {
		return nil, wrapSettingsError(e.cfg.serverID, err)
	}

	effective := layering.MergeLayers(decoded, DefaultAnalyzerOptions())
	return effective.Document(), nil
}

// OptionsSchema derives a schema document for the worktree's effective
// initialization options, for hosts rendering settings UIs or validating
// user configuration files.
func (e *Extension) OptionsSchema(worktree Worktree) (SchemaDocument, error) {
	document, err := e.InitializationOptions(worktree)
	if err != nil {
		return SchemaDocument{}, err
	}
	return e.schemaGenerator().Generate(document)
}
