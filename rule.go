package prefs

import (
	"fmt"
	"sync"
	"time"
)

// RuleOption configures a rule validator.
type RuleOption func(*ruleValidator)

// RuleWithEvaluator selects the engine that runs the rule. Defaults to the
// expr evaluator.
func RuleWithEvaluator(evaluator Evaluator) RuleOption {
	return func(r *ruleValidator) {
		if evaluator == nil {
			return
		}
		r.evaluator = evaluator
	}
}

// RuleWithMessage sets the rejection message reported when the rule returns
// false.
func RuleWithMessage(message string) RuleOption {
	return func(r *ruleValidator) {
		r.message = message
	}
}

// RuleWithLogger records every evaluation of the rule.
func RuleWithLogger(logger EvaluatorLogger) RuleOption {
	return func(r *ruleValidator) {
		if logger == nil {
			r.logger = noopEvaluatorLogger{}
			return
		}
		r.logger = logger
	}
}

// RuleWithFunctions exposes registry functions to the rule expression.
func RuleWithFunctions(registry *FunctionRegistry) RuleOption {
	return func(r *ruleValidator) {
		if registry == nil {
			return
		}
		r.registry = registry.Clone()
	}
}

// RuleWithProgramCache stores the compiled program in cache. Only consulted
// when the rule builds its own default evaluator.
func RuleWithProgramCache(cache ProgramCache) RuleOption {
	return func(r *ruleValidator) {
		r.cache = cache
	}
}

// Rule compiles expression into a Validator. The expression sees value,
// current, title, breadcrumb and now, and must return true to accept the
// candidate. Compilation happens on first use; an expression that does not
// compile rejects every candidate with the compile error.
func Rule(expression string, opts ...RuleOption) Validator {
	r := &ruleValidator{
		expression: expression,
		logger:     noopEvaluatorLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

type ruleValidator struct {
	expression string
	message    string
	evaluator  Evaluator
	registry   *FunctionRegistry
	cache      ProgramCache
	logger     EvaluatorLogger

	once     sync.Once
	compiled CompiledRule
	initErr  error
}

// Validate implements Validator by evaluating the rule expression against
// ctx.
func (r *ruleValidator) Validate(ctx ValueContext) error {
	r.once.Do(r.init)
	if r.initErr != nil {
		return r.initErr
	}
	ctx = ctx.withDefaultNow().withDefaultMaps()
	engine := evaluatorEngineName(r.evaluator)
	start := time.Now()
	result, evalErr := r.compiled.Evaluate(ctx)
	duration := time.Since(start)
	evalErr = wrapEvaluationError(engine, r.expression, ctx.label(), evalErr)
	r.logger.LogEvaluation(EvaluatorLogEvent{
		Engine:     engine,
		Expr:       r.expression,
		Breadcrumb: ctx.label(),
		Duration:   duration,
		Err:        evalErr,
	})
	if evalErr != nil {
		return evalErr
	}
	accepted, ok := result.(bool)
	if !ok {
		return wrapEvaluationError(engine, r.expression, ctx.label(),
			fmt.Errorf("rule returned %T, want bool", result))
	}
	if !accepted {
		msg := r.message
		if msg == "" {
			msg = fmt.Sprintf("rule %q failed", r.expression)
		}
		return &ValidationError{Breadcrumb: ctx.Breadcrumb, Value: ctx.Value, Message: msg}
	}
	return nil
}

func (r *ruleValidator) init() {
	if r.evaluator == nil {
		var opts []ExprEvaluatorOption
		if r.cache != nil {
			opts = append(opts, ExprWithProgramCache(r.cache))
		}
		if r.registry != nil {
			opts = append(opts, ExprWithFunctionRegistry(r.registry))
		}
		r.evaluator = NewExprEvaluator(opts...)
	}
	compiled, err := r.evaluator.Compile(r.expression)
	if err != nil {
		r.initErr = wrapEvaluationError(evaluatorEngineName(r.evaluator), r.expression, "", err)
		return
	}
	r.compiled = compiled
}

func evaluatorEngineName(e Evaluator) string {
	if e == nil {
		return "unknown"
	}
	switch fmt.Sprintf("%T", e) {
	case "*prefs.exprEvaluator":
		return "expr"
	case "*prefs.celEvaluator":
		return "cel"
	case "*prefs.jsEvaluator":
		return "js"
	default:
		return "custom"
	}
}
