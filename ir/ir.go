// Package ir defines the intermediate representation recorded by the
// shade DSL.
//
// Unlike an SSA-style IR, this representation is a plain expression
// tree: every node owns its children exclusively, and reusing a
// subtree in two places requires an explicit Clone. The tree is
// produced by the recording value layer and consumed by the glsl
// package, which lowers each node to GLSL source text.
package ir

// Node is a single node of the recorded tree.
//
// Nodes are immutable once constructed. A node owns its child nodes
// exclusively; Clone produces a fully independent subtree.
type Node interface {
	// Clone returns a deep copy of the node.
	Clone() Node

	nodeKind()
}

// Opcode identifies a binary or unary operation.
type Opcode uint8

const (
	OpAdd Opcode = iota
	OpSub
	OpMul
	OpDiv
	OpMod

	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr

	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe

	OpLogicAnd
	OpLogicOr

	// Unary opcodes. An Op node with one of these carries only Left.
	OpNeg
	OpBitNot
	OpLogicNot
)

// IsUnary reports whether the opcode takes a single operand.
func (op Opcode) IsUnary() bool {
	return op == OpNeg || op == OpBitNot || op == OpLogicNot
}

// Op is a binary or unary arithmetic, bitwise, shift, comparison or
// logical operation. Right is nil for unary opcodes.
type Op struct {
	Code  Opcode
	Left  Node
	Right Node
}

func (Op) nodeKind() {}

// Clone returns a deep copy of the node.
func (n Op) Clone() Node {
	return Op{Code: n.Code, Left: cloneNode(n.Left), Right: cloneNode(n.Right)}
}

// Intrinsic is a call to a GLSL built-in function.
type Intrinsic struct {
	Name string
	Args []Node
}

func (Intrinsic) nodeKind() {}

// Clone returns a deep copy of the node.
func (n Intrinsic) Clone() Node {
	return Intrinsic{Name: n.Name, Args: cloneNodes(n.Args)}
}

// Call is a call to a user-defined function emitted by a Callable.
type Call struct {
	Name string
	Args []Node
}

func (Call) nodeKind() {}

// Clone returns a deep copy of the node.
func (n Call) Clone() Node {
	return Call{Name: n.Name, Args: cloneNodes(n.Args)}
}

// LoadUniform carries a literal GLSL text payload emitted verbatim.
//
// This is the single escape hatch of the IR: serialised literals,
// thread-id built-ins, swizzle expressions and sampler fetches all
// reach the generated source through it.
type LoadUniform struct {
	Text string
}

func (LoadUniform) nodeKind() {}

// Clone returns a deep copy of the node.
func (n LoadUniform) Clone() Node { return n }

// DeclVar declares a local variable. External declarations bind to a
// name that already exists in the shader (a built-in or a uniform)
// and emit no text.
type DeclVar struct {
	Name     string
	TypeName string
	External bool
}

func (DeclVar) nodeKind() {}

// Clone returns a deep copy of the node.
func (n DeclVar) Clone() Node { return n }

// DeclArray declares a fixed-size local array.
type DeclArray struct {
	Name     string
	TypeName string
	Count    int
}

func (DeclArray) nodeKind() {}

// Clone returns a deep copy of the node.
func (n DeclArray) Clone() Node { return n }

// Load reads a named lvalue.
type Load struct {
	Name string
}

func (Load) nodeKind() {}

// Clone returns a deep copy of the node.
func (n Load) Clone() Node { return n }

// Store assigns Src to the lvalue described by Dst.
type Store struct {
	Dst Node
	Src Node
}

func (Store) nodeKind() {}

// Clone returns a deep copy of the node.
func (n Store) Clone() Node {
	return Store{Dst: cloneNode(n.Dst), Src: cloneNode(n.Src)}
}

// ArrayAccess subscripts Base with Index.
type ArrayAccess struct {
	Base  Node
	Index Node
}

func (ArrayAccess) nodeKind() {}

// Clone returns a deep copy of the node.
func (n ArrayAccess) Clone() Node {
	return ArrayAccess{Base: cloneNode(n.Base), Index: cloneNode(n.Index)}
}

// MemberAccess selects a struct field of Base.
type MemberAccess struct {
	Base  Node
	Field string
}

func (MemberAccess) nodeKind() {}

// Clone returns a deep copy of the node.
func (n MemberAccess) Clone() Node {
	return MemberAccess{Base: cloneNode(n.Base), Field: n.Field}
}

// CompoundAssign applies `Dst <op>= Src`.
type CompoundAssign struct {
	Code Opcode
	Dst  Node
	Src  Node
}

func (CompoundAssign) nodeKind() {}

// Clone returns a deep copy of the node.
func (n CompoundAssign) Clone() Node {
	return CompoundAssign{Code: n.Code, Dst: cloneNode(n.Dst), Src: cloneNode(n.Src)}
}

// IncDec is an increment or decrement of an lvalue.
type IncDec struct {
	Dst       Node
	Decrement bool
	Prefix    bool
}

func (IncDec) nodeKind() {}

// Clone returns a deep copy of the node.
func (n IncDec) Clone() Node {
	return IncDec{Dst: cloneNode(n.Dst), Decrement: n.Decrement, Prefix: n.Prefix}
}

// ElseIf is one arm of an If chain.
type ElseIf struct {
	Cond Node
	Body []Node
}

// If is a conditional with an arbitrary else-if chain and an optional
// else block (nil when absent).
type If struct {
	Cond    Node
	Then    []Node
	ElseIfs []ElseIf
	Else    []Node
}

func (If) nodeKind() {}

// Clone returns a deep copy of the node.
func (n If) Clone() Node {
	out := If{Cond: cloneNode(n.Cond), Then: cloneNodes(n.Then), Else: cloneNodes(n.Else)}
	if n.ElseIfs != nil {
		out.ElseIfs = make([]ElseIf, len(n.ElseIfs))
		for i, e := range n.ElseIfs {
			out.ElseIfs[i] = ElseIf{Cond: cloneNode(e.Cond), Body: cloneNodes(e.Body)}
		}
	}
	return out
}

// While is a pre-tested loop.
type While struct {
	Cond Node
	Body []Node
}

func (While) nodeKind() {}

// Clone returns a deep copy of the node.
func (n While) Clone() Node {
	return While{Cond: cloneNode(n.Cond), Body: cloneNodes(n.Body)}
}

// DoWhile is a post-tested loop.
type DoWhile struct {
	Cond Node
	Body []Node
}

func (DoWhile) nodeKind() {}

// Clone returns a deep copy of the node.
func (n DoWhile) Clone() Node {
	return DoWhile{Cond: cloneNode(n.Cond), Body: cloneNodes(n.Body)}
}

// For is a counted loop: an int counter starting at Start, a
// strict-less-than Bound and an additive Step.
type For struct {
	VarName string
	Start   Node
	Bound   Node
	Step    Node
	Body    []Node
}

func (For) nodeKind() {}

// Clone returns a deep copy of the node.
func (n For) Clone() Node {
	return For{
		VarName: n.VarName,
		Start:   cloneNode(n.Start),
		Bound:   cloneNode(n.Bound),
		Step:    cloneNode(n.Step),
		Body:    cloneNodes(n.Body),
	}
}

// Break exits the innermost loop.
type Break struct{}

func (Break) nodeKind() {}

// Clone returns a deep copy of the node.
func (n Break) Clone() Node { return n }

// Continue skips to the next iteration of the innermost loop.
type Continue struct{}

func (Continue) nodeKind() {}

// Clone returns a deep copy of the node.
func (n Continue) Clone() Node { return n }

// Return exits the current function, optionally carrying a value.
type Return struct {
	Value Node
}

func (Return) nodeKind() {}

// Clone returns a deep copy of the node.
func (n Return) Clone() Node { return Return{Value: cloneNode(n.Value)} }

// RawCode is pre-rendered GLSL text emitted as a statement as-is.
type RawCode struct {
	Text string
}

func (RawCode) nodeKind() {}

// Clone returns a deep copy of the node.
func (n RawCode) Clone() Node { return n }

func cloneNode(n Node) Node {
	if n == nil {
		return nil
	}
	return n.Clone()
}

func cloneNodes(ns []Node) []Node {
	if ns == nil {
		return nil
	}
	out := make([]Node, len(ns))
	for i, n := range ns {
		out[i] = cloneNode(n)
	}
	return out
}
