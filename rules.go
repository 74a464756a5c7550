package launch

import (
	"errors"
	"fmt"
	"time"
)

var ErrNoEvaluator = errors.New("launch: evaluator not configured")

// Response stores the result produced by an evaluator.
type Response struct {
	Value any
}

// Evaluate executes expr against the worktree's effective initialization
// options, so hosts can gate editor affordances on rules like
// "strictMode && !disableAll" without re-implementing settings precedence.
func (e *Extension) Evaluate(worktree Worktree, expr string) (Response, error) {
	document, err := e.InitializationOptions(worktree)
	if err != nil {
		return Response{}, err
	}
	return e.EvaluateOptions(document, expr)
}

// EvaluateOptions executes expr against an already-built options document.
func (e *Extension) EvaluateOptions(document map[string]any, expr string) (Response, error) {
	if expr == "" {
		return Response{}, fmt.Errorf("expression must not be empty")
	}
	evaluator, err := e.resolveEvaluator()
	if err != nil {
		return Response{}, err
	}
	ctx := RuleContext{Snapshot: document, Server: e.cfg.serverID}.withDefaultNow().withDefaultMaps()
	engine := evaluatorEngineName(evaluator)
	start := time.Now()
	value, evalErr := evaluator.Evaluate(ctx, expr)
	duration := time.Since(start)
	evalErr = wrapEvaluationError("", expr, ctx.serverLabel(), evalErr)
	e.evaluatorLogger().LogEvaluation(EvaluatorLogEvent{
		Engine:   engine,
		Expr:     expr,
		Server:   ctx.serverLabel(),
		Duration: duration,
		Err:      evalErr,
	})
	if evalErr != nil {
		return Response{}, evalErr
	}
	return Response{Value: value}, nil
}

// CompileRule compiles expr into a reusable program against the configured
// evaluator.
func (e *Extension) CompileRule(expr string, opts ...CompileOption) (CompiledRule, error) {
	evaluator, err := e.resolveEvaluator()
	if err != nil {
		return nil, err
	}
	return evaluator.Compile(expr, opts...)
}

func (e *Extension) resolveEvaluator() (Evaluator, error) {
	evaluator := e.evaluator()
	if evaluator != nil {
		return evaluator, nil
	}
	var exprOpts []ExprEvaluatorOption
	if cache := e.programCache(); cache != nil {
		exprOpts = append(exprOpts, ExprWithProgramCache(cache))
	}
	if registry := e.functionRegistry(); registry != nil {
		exprOpts = append(exprOpts, ExprWithFunctionRegistry(registry))
	}
	defaultEvaluator := NewExprEvaluator(exprOpts...)
	if defaultEvaluator == nil {
		return nil, ErrNoEvaluator
	}
	e.withEvaluator(defaultEvaluator)
	return defaultEvaluator, nil
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch e.(type) {
	case *exprEvaluator:
		return "expr"
	default:
		return "custom"
	}
}
