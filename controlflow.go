package shade

import "github.com/gogpu/shade/ir"

// Control flow. Each construct captures the statements its body
// function records into a nested buffer and emits a single
// control-flow node wrapping the captured text. Outside a recording
// context the body functions do not run.

func captured(fn func()) []ir.Node {
	ctx := current()
	if ctx == nil || fn == nil {
		return nil
	}
	text := ctx.capture(fn)
	if text == "" {
		return nil
	}
	return []ir.Node{ir.RawCode{Text: text}}
}

// If records a conditional without an else branch.
func If(cond Operand[bool], then func()) {
	if current() == nil {
		return
	}
	emitStatement(ir.If{Cond: node(cond), Then: captured(then)})
}

// IfElse records a conditional with an else branch.
func IfElse(cond Operand[bool], then, els func()) {
	if current() == nil {
		return
	}
	body := captured(then)
	elseBody := captured(els)
	if elseBody == nil {
		elseBody = []ir.Node{}
	}
	emitStatement(ir.If{Cond: node(cond), Then: body, Else: elseBody})
}

// CondArm is one arm of an if/else-if chain.
type CondArm struct {
	When Operand[bool]
	Then func()
}

// IfChain records an if with an arbitrary else-if chain and an
// optional trailing else (nil for none).
func IfChain(arms []CondArm, els func()) {
	if current() == nil || len(arms) == 0 {
		return
	}
	stmt := ir.If{Cond: node(arms[0].When), Then: captured(arms[0].Then)}
	for _, arm := range arms[1:] {
		stmt.ElseIfs = append(stmt.ElseIfs, ir.ElseIf{Cond: node(arm.When), Body: captured(arm.Then)})
	}
	if els != nil {
		stmt.Else = captured(els)
		if stmt.Else == nil {
			stmt.Else = []ir.Node{}
		}
	}
	emitStatement(stmt)
}

// While records a pre-tested loop.
func While(cond Operand[bool], body func()) {
	if current() == nil {
		return
	}
	emitStatement(ir.While{Cond: node(cond), Body: captured(body)})
}

// DoWhile records a post-tested loop.
func DoWhile(body func(), cond Operand[bool]) {
	if current() == nil {
		return
	}
	emitStatement(ir.DoWhile{Cond: node(cond), Body: captured(body)})
}

// For records a counted loop over an int counter running from start
// while strictly below bound, advancing by step. The counter is
// passed to the body as a read-only variable.
func For(start, bound, step Operand[int32], body func(i *Var[int32])) {
	ctx := current()
	if ctx == nil {
		return
	}
	counter := ctx.newName()
	emitStatement(ir.For{
		VarName: counter,
		Start:   node(start),
		Bound:   node(bound),
		Step:    node(step),
		Body:    captured(func() { body(BindVar[int32](counter)) }),
	})
}

// Break records a break statement.
func Break() { emitStatement(ir.Break{}) }

// Continue records a continue statement.
func Continue() { emitStatement(ir.Continue{}) }

// Return records a return carrying a value, for use inside callable
// bodies.
func Return[T any](v Operand[T]) {
	emitStatement(ir.Return{Value: node(v)})
}

// ReturnVoid records a bare return.
func ReturnVoid() { emitStatement(ir.Return{}) }
