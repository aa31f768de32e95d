// SPDX-License-Identifier: MIT

// Package expr: the shared Node contract, buffer/seed precondition checks
// and the generic evaluation kernels every node kind delegates to. One
// generic kernel per structural transform serves the numeric and the
// symbolic-scalar path alike.
package expr

import (
	"fmt"

	"github.com/katalvlaran/lvlgrad/codegen"
	"github.com/katalvlaran/lvlgrad/dmat"
	"github.com/katalvlaran/lvlgrad/sparsity"
)

// Workspace is the scheduler-owned scratch area handed into evaluation
// calls. It is sized to the maximum WorkSize over the graph; nodes may use
// it freely within one invocation and must not retain it.
type Workspace struct {
	Int  []int
	Real []float64
}

// Node is the uniform contract of one graph vertex. Implementations are
// immutable after construction: the dependency list, the sparsity pattern
// and all node-specific parameters are fixed, so a Node may be shared by
// any number of downstream expressions and invoked from any scheduler.
//
// All four evaluation operations consume dependency buffers owned by the
// caller and write into caller-provided output buffers; none of them
// retains a reference beyond the call. Each one must return immediately,
// touching nothing, when the output storage aliases the input storage
// (the scheduler omits copies for pure reinterpretations).
type Node interface {
	// Op returns the stable opcode identity of the node kind.
	Op() Op

	// Sparsity returns the node's own output pattern (never nil).
	Sparsity() *sparsity.Pattern

	// NumDeps returns the fixed dependency arity of the node kind.
	NumDeps() int

	// Dep returns the i-th dependency expression; i must be in
	// [0, NumDeps).
	Dep(i int) Expr

	// EvalNum writes the node's numeric result into out[0] given the
	// dependencies' already-computed numeric buffers.
	EvalNum(in, out []*dmat.Num, w *Workspace) error

	// EvalSym is EvalNum over symbolic-scalar buffers: the identical
	// contract, the identical in-place rule.
	EvalSym(in, out []*dmat.SMat, w *Workspace) error

	// Derive populates *out[0] with this node's expression when
	// outputGiven is false, then propagates sensitivities: for each
	// forward direction d the dependency seeds fwdSeed[d] transform into
	// *fwdSens[d][0] under the primal structural transform; for each
	// adjoint direction d the output seed *adjSeed[d][0] transforms under
	// the adjoint (inverse/scatter) transform, is ACCUMULATED into the
	// dependency slots adjSens[d], and the consumed seed slot is reset to
	// the empty expression. Zero directions mean no propagation work.
	// Slot pointer equality in[0] == out[0] short-circuits the call.
	Derive(in, out []*Expr, fwdSeed, fwdSens, adjSeed, adjSens [][]*Expr, outputGiven bool) error

	// PropagateSparsity moves per-nonzero seed words (one bit per
	// simultaneous direction) through the node: forward applies the
	// primal transform to the dependency words; backward ORs the output
	// words into the dependency words at the transform's source positions
	// and then zeroes the consumed output words.
	PropagateSparsity(in, out []*dmat.BMat, fwd bool) error

	// PrintPart returns the textual fragment printed before the first
	// dependency (part 0), between dependencies, and after the last one
	// (part NumDeps).
	PrintPart(part int) string

	// Generate emits the node's code fragment against the scheduler's
	// argument and result variable names; it emits nothing when
	// arg[0] == res[0] (in-place storage).
	Generate(g *codegen.Generator, arg, res []string) error

	// WorkSize reports the integer and real scratch words the node needs
	// per invocation.
	WorkSize() (ni, nr int)
}

// baseNode carries the structural identity shared by every node kind.
type baseNode struct {
	op   Op
	sp   *sparsity.Pattern
	deps []Expr
}

func (b *baseNode) Op() Op                       { return b.op }
func (b *baseNode) Sparsity() *sparsity.Pattern  { return b.sp }
func (b *baseNode) NumDeps() int                 { return len(b.deps) }
func (b *baseNode) Dep(i int) Expr               { return b.deps[i] }
func (b *baseNode) WorkSize() (ni, nr int)       { return 0, 0 }

// checkBuffers enforces the invocation preconditions of the evaluation
// and sparsity operations: one buffer per dependency, exactly one result
// buffer, every buffer sized to its declared sparsity. Violations are
// fatal precondition failures, not recoverable conditions.
// Complexity: O(NumDeps).
func checkBuffers[T any](n Node, in, out []*dmat.Mat[T]) error {
	if len(in) != n.NumDeps() || len(out) != 1 {
		return fmt.Errorf("%s: got %d in / %d out: %w", n.Op(), len(in), len(out), ErrArity)
	}
	for i := range in {
		if in[i] == nil || in[i].NNZ() != n.Dep(i).NNZ() {
			return fmt.Errorf("%s: argument %d: %w", n.Op(), i, ErrBufferShape)
		}
	}
	if out[0] == nil || out[0].NNZ() != n.Sparsity().NNZ() {
		return fmt.Errorf("%s: result: %w", n.Op(), ErrBufferShape)
	}

	return nil
}

// checkSeeds enforces the shape of the per-direction seed/sensitivity
// slot vectors: fwdSeed[d] and adjSens[d] carry one slot per dependency,
// fwdSens[d] and adjSeed[d] carry exactly one output slot. Direction
// counts of zero are valid (no propagation work).
// Complexity: O(nfwd·NumDeps + nadj·NumDeps).
func checkSeeds(n Node, fwdSeed, fwdSens, adjSeed, adjSens [][]*Expr) error {
	if len(fwdSeed) != len(fwdSens) || len(adjSeed) != len(adjSens) {
		return fmt.Errorf("%s: seed/sensitivity direction counts differ: %w", n.Op(), ErrSeedShape)
	}
	for d := range fwdSeed {
		if len(fwdSeed[d]) != n.NumDeps() || len(fwdSens[d]) != 1 {
			return fmt.Errorf("%s: forward direction %d: %w", n.Op(), d, ErrSeedShape)
		}
		for i := range fwdSeed[d] {
			if fwdSeed[d][i] == nil {
				return fmt.Errorf("%s: forward direction %d seed %d is nil: %w", n.Op(), d, i, ErrSeedShape)
			}
		}
		if fwdSens[d][0] == nil {
			return fmt.Errorf("%s: forward direction %d sensitivity is nil: %w", n.Op(), d, ErrSeedShape)
		}
	}
	for d := range adjSeed {
		if len(adjSeed[d]) != 1 || len(adjSens[d]) != n.NumDeps() {
			return fmt.Errorf("%s: adjoint direction %d: %w", n.Op(), d, ErrSeedShape)
		}
		if adjSeed[d][0] == nil {
			return fmt.Errorf("%s: adjoint direction %d seed is nil: %w", n.Op(), d, ErrSeedShape)
		}
		for i := range adjSens[d] {
			if adjSens[d][i] == nil {
				return fmt.Errorf("%s: adjoint direction %d sensitivity %d is nil: %w", n.Op(), d, i, ErrSeedShape)
			}
		}
	}

	return nil
}

// evalCopy is the positional-copy kernel: the nonzero sequence moves
// unchanged. Callers have already excluded the in-place case.
func evalCopy[T any](in, out *dmat.Mat[T]) {
	copy(out.Data(), in.Data())
}

// evalGather is the gather kernel: out[k] = in[sel[k]].
func evalGather[T any](in, out *dmat.Mat[T], sel []int) {
	src, dst := in.Data(), out.Data()
	for k, p := range sel {
		dst[k] = src[p]
	}
}

// evalScatter is the scatter kernel: zero-fill, then out[sel[k]] = in[k].
// The zero-fill is what makes scatter strictly more expensive than its
// gather counterpart.
func evalScatter[T any](in, out *dmat.Mat[T], sel []int) {
	out.Zero()
	src, dst := in.Data(), out.Data()
	for k, p := range sel {
		dst[p] = src[k]
	}
}

// evalAdd is the elementwise-sum kernel. Aliasing with either operand is
// legal and turns the sum into compound accumulation into the shared
// storage (a full no-op would drop the other operand).
func evalAdd[T any](a, b, out *dmat.Mat[T], add func(T, T) T) {
	av, bv, ov := a.Data(), b.Data(), out.Data()
	switch {
	case dmat.SharesStorage(out, a):
		for k := range ov {
			ov[k] = add(ov[k], bv[k])
		}
	case dmat.SharesStorage(out, b):
		for k := range ov {
			ov[k] = add(av[k], ov[k])
		}
	default:
		for k := range ov {
			ov[k] = add(av[k], bv[k])
		}
	}
}

// accumulate implements the adjoint accumulation rule: an empty slot is
// assigned, a non-empty slot grows by an elementwise sum. Empty
// contributions (structural zeros) leave the slot untouched.
func accumulate(slot *Expr, contrib Expr) error {
	if contrib.IsEmpty() {
		return nil
	}
	if slot.IsEmpty() {
		*slot = contrib

		return nil
	}
	sum, err := Add(*slot, contrib)
	if err != nil {
		return err
	}
	*slot = sum

	return nil
}
