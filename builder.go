package shade

import "github.com/gogpu/shade/ir"

// The builder holds a pointer to the currently active recording
// context. Go has no per-thread storage worth leaning on, so the
// pointer is package-level and recording is single-goroutine by
// contract: each kernel constructor saves the previous pointer and
// restores it on exit, which also makes nested recording work.
var activeContext *recordContext

// bindContext installs ctx as the active recording context and
// returns a function restoring the previous one.
func bindContext(ctx *recordContext) (restore func()) {
	prev := activeContext
	activeContext = ctx
	return func() { activeContext = prev }
}

// current returns the active recording context, or nil when no kernel
// is being recorded. All DSL entry points tolerate nil and no-op.
func current() *recordContext {
	return activeContext
}

// emit renders a node and appends it to the active context, as a
// statement when stmt is true. With no active context the node is
// dropped.
func emit(n ir.Node, stmt bool) {
	ctx := current()
	if ctx == nil {
		Logger().Warn("shade: DSL statement recorded outside a kernel, dropped")
		return
	}
	ctx.build(n, stmt)
}

// emitStatement appends n as a statement to the active context.
func emitStatement(n ir.Node) { emit(n, true) }
