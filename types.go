package launch

import "time"

// Worktree exposes the host-owned context for the current project folder.
// Hosts adapt their native worktree handle to this interface; the library
// never reads the filesystem or process environment on its own.
type Worktree interface {
	// LSPSettings returns the structured settings document configured for the
	// given language-server identifier.
	LSPSettings(serverID string) (Settings, error)
	// Which resolves name against the worktree's PATH, reporting whether a
	// match was found.
	Which(name string) (string, bool)
	// ShellEnv returns a snapshot of the user's shell environment.
	ShellEnv() map[string]string
}

// Settings is the host settings document for a single language server. The
// new initialization_options shape and the legacy settings shape are never
// merged; InitializationOptions takes full precedence when present.
type Settings struct {
	Binary                *BinarySettings `json:"binary,omitempty"`
	InitializationOptions map[string]any  `json:"initialization_options,omitempty"`
	Settings              map[string]any  `json:"settings,omitempty"`
}

// BinarySettings carries an explicit binary override from the host settings.
// The path is trusted verbatim; the host validates existence.
type BinarySettings struct {
	Path string `json:"path,omitempty"`
}

// Command describes how the host should launch the language server. Args and
// Env are always present and always empty; the server needs neither.
type Command struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// RuleContext carries inputs needed when evaluating an expression against an
// options snapshot.
type RuleContext struct {
	Snapshot any
	Now      *time.Time
	Args     map[string]any
	Metadata map[string]any
	Server   string
}

func (ctx RuleContext) withDefaultNow() RuleContext {
	if ctx.Now != nil {
		return ctx
	}
	now := time.Now()
	ctx.Now = &now
	return ctx
}

func (ctx RuleContext) timestamp() time.Time {
	ctx = ctx.withDefaultNow()
	return *ctx.Now
}

func (ctx RuleContext) withDefaultMaps() RuleContext {
	if ctx.Args == nil {
		ctx.Args = map[string]any{}
	}
	if ctx.Metadata == nil {
		ctx.Metadata = map[string]any{}
	}
	return ctx
}

func (ctx RuleContext) serverLabel() string {
	if ctx.Server != "" {
		return ctx.Server
	}
	return "unknown"
}

// Evaluator executes expressions against a rule context.
type Evaluator interface {
	Evaluate(ctx RuleContext, expr string) (any, error)
	Compile(expr string, opts ...CompileOption) (CompiledRule, error)
}

// CompiledRule represents a reusable expression program.
type CompiledRule interface {
	Evaluate(ctx RuleContext) (any, error)
}

// CompileOption configures evaluator compile behaviour.
type CompileOption interface {
	applyCompileOption(*compileConfig)
}

type compileConfig struct{}

type compileOptionFunc func(*compileConfig)

func (f compileOptionFunc) applyCompileOption(cfg *compileConfig) {
	if f != nil {
		f(cfg)
	}
}

// SchemaFormat identifies the representation a schema document encodes.
type SchemaFormat string

// SchemaFormatDescriptors represents the flattened field descriptors.
const SchemaFormatDescriptors SchemaFormat = "descriptors"

// SchemaDocument encapsulates a generated schema output alongside its format
// identifier. Implementations must ensure Document is JSON-serialisable.
type SchemaDocument struct {
	Format   SchemaFormat
	Document any
}

// SchemaGenerator transforms an options document into a schema document. All
// implementations MUST be safe for concurrent use and handle nil inputs by
// returning an empty schema document.
type SchemaGenerator interface {
	Generate(value any) (SchemaDocument, error)
}

// Option configures an Extension instance.
type Option func(*extensionConfig)

type extensionConfig struct {
	serverID        string
	binaryName      string
	installModule   string
	fallback        FallbackPolicy
	resolverLogger  ResolverLogger
	evaluator       Evaluator
	programCache    ProgramCache
	functions       *FunctionRegistry
	evaluatorLogger EvaluatorLogger
	schemaGenerator SchemaGenerator
}

func applyOptions(opts []Option) extensionConfig {
	cfg := extensionConfig{
		serverID:      DefaultServerID,
		binaryName:    DefaultBinaryName,
		installModule: DefaultInstallModule,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithServerID overrides the language-server identifier used for settings
// lookups.
func WithServerID(serverID string) Option {
	return func(cfg *extensionConfig) {
		if serverID != "" {
			cfg.serverID = serverID
		}
	}
}

// WithBinaryName overrides the canonical binary name searched for in PATH and
// the Go install directories.
func WithBinaryName(name string) Option {
	return func(cfg *extensionConfig) {
		if name != "" {
			cfg.binaryName = name
		}
	}
}

// WithInstallModule overrides the module path suggested in the remediation
// hint when the binary cannot be found.
func WithInstallModule(module string) Option {
	return func(cfg *extensionConfig) {
		if module != "" {
			cfg.installModule = module
		}
	}
}

// WithEvaluator configures the evaluator used for settings predicates.
func WithEvaluator(e Evaluator) Option {
	return func(cfg *extensionConfig) {
		cfg.evaluator = e
	}
}

// WithSchemaGenerator configures a custom schema generator implementation.
func WithSchemaGenerator(generator SchemaGenerator) Option {
	return func(cfg *extensionConfig) {
		cfg.schemaGenerator = generator
	}
}

func (e *Extension) evaluator() Evaluator {
	return e.cfg.evaluator
}

func (e *Extension) withEvaluator(ev Evaluator) {
	e.cfg.evaluator = ev
}

func (e *Extension) programCache() ProgramCache {
	return e.cfg.programCache
}

func (e *Extension) functionRegistry() *FunctionRegistry {
	return e.cfg.functions
}

func (e *Extension) schemaGenerator() SchemaGenerator {
	if e == nil {
		return DefaultSchemaGenerator()
	}
	if e.cfg.schemaGenerator != nil {
		return e.cfg.schemaGenerator
	}
	return DefaultSchemaGenerator()
}
