// Package sema validates attribute placement and combinations over HIR.
//
// Проход ничего не мутирует: он классифицирует узлы (Target), сверяет каждый
// атрибут с правилами размещения и формы и складывает диагностики в Reporter.
// Обнаружение продолжается после каждой ошибки; восстановление не требуется.
package sema

import (
	"fmt"

	"ember/internal/diag"
	"ember/internal/hir"
	"ember/internal/source"
	"ember/internal/target"
)

// Config toggles optional attribute rules.
type Config struct {
	// RequireWasmImportModule enables the warning on wasm32 foreign
	// modules that lack a @wasm_import_module annotation. The policy is
	// not stabilized yet, so the rule ships disabled.
	RequireWasmImportModule bool
}

// CodegenResolver resolves codegen attributes for declarations that need
// them eagerly (functions and constants). The production resolver lives in
// the backend; this pass only triggers it.
type CodegenResolver interface {
	ResolveCodegenAttrs(item *hir.Item)
}

// Options configure an attribute pass over a module.
type Options struct {
	Reporter diag.Reporter
	Target   target.Spec
	Config   Config
	Codegen  CodegenResolver
}

// Check validates every attribute in the module: on declarations, on
// declaration statements, and on expressions. Diagnostics go to
// opts.Reporter; a nil reporter turns the pass into a dry run.
func Check(mod *hir.Module, opts Options) {
	if mod == nil {
		return
	}
	spec := opts.Target
	if spec.Triple == "" {
		spec = target.Default()
	}
	checker := attrChecker{
		reporter: opts.Reporter,
		target:   spec,
		config:   opts.Config,
		codegen:  opts.Codegen,
	}
	hir.Walk(&checker, mod)
}

type attrChecker struct {
	reporter diag.Reporter
	target   target.Spec
	config   Config
	codegen  CodegenResolver
}

// VisitItem checks attributes on a declaration.
func (ac *attrChecker) VisitItem(item *hir.Item) {
	ac.checkItemAttrs(item, TargetForItem(item))
}

// VisitStmt checks attributes on a declaration statement.
func (ac *attrChecker) VisitStmt(stmt *hir.Stmt) {
	ac.checkStmtAttrs(stmt)
}

// VisitExpr checks attributes on an expression.
func (ac *attrChecker) VisitExpr(expr *hir.Expr) {
	ac.checkExprAttrs(expr)
}

func (ac *attrChecker) report(code diag.Code, span source.Span, format string, args ...interface{}) {
	if ac.reporter == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	diag.ReportError(ac.reporter, code, span, msg).Emit()
}

func (ac *attrChecker) reportWithNote(code diag.Code, span source.Span, msg string, noteSpan source.Span, note string) {
	if ac.reporter == nil {
		return
	}
	diag.ReportError(ac.reporter, code, span, msg).
		WithNote(noteSpan, note).
		Emit()
}
