package launch

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

type countingCache struct {
	mu       sync.Mutex
	programs map[string]any
	hits     int
	sets     int
}

func newCountingCache() *countingCache {
	return &countingCache{programs: map[string]any{}}
}

func (c *countingCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.programs[key]
	if ok {
		c.hits++
	}
	return value, ok
}

func (c *countingCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.programs[key] = value
}

func TestEvaluateAgainstDefaults(t *testing.T) {
	ext := New()
	response, err := ext.Evaluate(&fakeWorktree{}, "!strictMode && !disableAll")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != true {
		t.Fatalf("expected true for default options, got %#v", response.Value)
	}
}

func TestEvaluateSeesEffectiveOptions(t *testing.T) {
	ext := New()
	worktree := &fakeWorktree{
		settings: Settings{
			Settings: map[string]any{"strictMode": true},
		},
	}

	response, err := ext.Evaluate(worktree, "strictMode && !disableAll")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != true {
		t.Fatalf("expected strict-mode rule to pass, got %#v", response.Value)
	}
}

func TestEvaluateOptionsDocumentBinding(t *testing.T) {
	ext := New()
	document := map[string]any{"strictMode": true}

	response, err := ext.EvaluateOptions(document, "options.strictMode")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != true {
		t.Fatalf("expected options binding to expose the document, got %#v", response.Value)
	}

	response, err = ext.EvaluateOptions(document, "server")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != DefaultServerID {
		t.Fatalf("expected server binding %q, got %#v", DefaultServerID, response.Value)
	}
}

func TestEvaluateEmptyExpression(t *testing.T) {
	ext := New()
	if _, err := ext.EvaluateOptions(map[string]any{}, ""); err == nil {
		t.Fatal("expected error for empty expression")
	}
}

func TestEvaluateWrapsEngineErrors(t *testing.T) {
	ext := New()
	_, err := ext.EvaluateOptions(map[string]any{}, "strictMode &&")
	if err == nil {
		t.Fatal("expected syntax error")
	}
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %T", err)
	}
	if evalErr.Engine != "expr" {
		t.Fatalf("expected expr engine, got %q", evalErr.Engine)
	}
	if !strings.HasPrefix(err.Error(), "launch:") {
		t.Fatalf("expected launch-prefixed message, got %q", err.Error())
	}
}

func TestEvaluatorLoggerReceivesEvent(t *testing.T) {
	var events []EvaluatorLogEvent
	ext := New(WithEvaluatorLogger(EvaluatorLoggerFunc(func(event EvaluatorLogEvent) {
		events = append(events, event)
	})))

	if _, err := ext.EvaluateOptions(map[string]any{"disableAll": false}, "!disableAll"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected one evaluation event, got %d", len(events))
	}
	if events[0].Engine != "expr" {
		t.Fatalf("expected expr engine in event, got %q", events[0].Engine)
	}
	if events[0].Server != DefaultServerID {
		t.Fatalf("expected server %q in event, got %q", DefaultServerID, events[0].Server)
	}
}

func TestEvaluateCustomFunction(t *testing.T) {
	ext := New(WithCustomFunction("allcaps", func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, errors.New("allcaps expects one argument")
		}
		value, ok := args[0].(string)
		if !ok {
			return nil, errors.New("allcaps expects a string")
		}
		return strings.ToUpper(value), nil
	}))

	response, err := ext.EvaluateOptions(map[string]any{}, `allcaps("warn") == "WARN"`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != true {
		t.Fatalf("expected custom function result, got %#v", response.Value)
	}
}

func TestEvaluateReusesCompiledPrograms(t *testing.T) {
	cache := newCountingCache()
	ext := New(WithProgramCache(cache))

	const rule = "strictMode == true"
	document := map[string]any{"strictMode": true}

	if _, err := ext.EvaluateOptions(document, rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ext.EvaluateOptions(document, rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.sets != 1 {
		t.Fatalf("expected a single compile, got %d", cache.sets)
	}
	if cache.hits == 0 {
		t.Fatal("expected the second evaluation to hit the cache")
	}
}

func TestCompileRule(t *testing.T) {
	ext := New()
	rule, err := ext.CompileRule("strictMode && !disableAll")
	if err != nil {
		t.Fatalf("unexpected compile error: %v", err)
	}

	value, err := rule.Evaluate(RuleContext{
		Snapshot: map[string]any{"strictMode": true, "disableAll": false},
		Server:   DefaultServerID,
	})
	if err != nil {
		t.Fatalf("unexpected evaluation error: %v", err)
	}
	if value != true {
		t.Fatalf("expected compiled rule to pass, got %#v", value)
	}
}

func TestCustomEvaluatorOption(t *testing.T) {
	custom := &staticEvaluator{value: 42}
	ext := New(WithEvaluator(custom))

	response, err := ext.EvaluateOptions(map[string]any{}, "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if response.Value != 42 {
		t.Fatalf("expected custom evaluator result, got %#v", response.Value)
	}
}

type staticEvaluator struct {
	value any
}

func (e *staticEvaluator) Evaluate(RuleContext, string) (any, error) {
	return e.value, nil
}

func (e *staticEvaluator) Compile(expr string, _ ...CompileOption) (CompiledRule, error) {
	return staticRule{value: e.value}, nil
}

type staticRule struct {
	value any
}

func (r staticRule) Evaluate(RuleContext) (any, error) {
	return r.value, nil
}
