package tracing

import (
	"github.com/sirkon/errors"
	"go.uber.org/zap"
	"golang.org/x/tools/go/ssa"

	"github.com/sirkon/absint/internal/expr"
	"github.com/sirkon/absint/internal/lattice"
)

// Defaults for zero Options fields.
const (
	DefaultWideningThreshold = 3
	DefaultMaxIterations     = 10000
)

// Options tunes the interpreter.
type Options struct {
	// WideningThreshold is how many joins a block entry takes before joins turn into widenings.
	WideningThreshold int

	// MaxIterations caps the number of block visits of one function.
	MaxIterations int

	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.WideningThreshold <= 0 {
		o.WideningThreshold = DefaultWideningThreshold
	}
	if o.MaxIterations <= 0 {
		o.MaxIterations = DefaultMaxIterations
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

// Result is the outcome of interpreting one function.
type Result[D lattice.Domain[D]] struct {
	Function *ssa.Function

	// Entry holds the stable state at the entry of every reachable block.
	Entry map[*ssa.BasicBlock]D

	// Conditions holds what the entry state of reachable branches says about their conditions.
	Conditions map[*ssa.If]lattice.Satisfiability

	// Divisions lists integer divisions that leave no reachable state.
	Divisions []*ssa.BinOp

	Iterations int

	// Converged is false when the iteration cap was hit. Nothing else in
	// the result is trustworthy then.
	Converged bool
}

// Interpret runs the domain over the function starting with init at the entry block.
func Interpret[D lattice.Domain[D]](fn *ssa.Function, init D, opts Options) (*Result[D], error) {
	opts = opts.withDefaults()
	log := opts.Logger.With(zap.String("function", fn.String()))

	res := &Result[D]{
		Function:   fn,
		Entry:      map[*ssa.BasicBlock]D{},
		Conditions: map[*ssa.If]lattice.Satisfiability{},
	}
	if len(fn.Blocks) == 0 {
		res.Converged = true
		return res, nil
	}

	in := &interpreter[D]{
		opts:   opts,
		log:    log,
		entry:  res.Entry,
		visits: map[*ssa.BasicBlock]int{},
	}

	in.entry[fn.Blocks[0]] = init
	queue := []*ssa.BasicBlock{fn.Blocks[0]}
	queued := map[*ssa.BasicBlock]bool{fn.Blocks[0]: true}
	for len(queue) > 0 {
		if res.Iterations >= opts.MaxIterations {
			log.Warn("iteration limit reached", zap.Int("limit", opts.MaxIterations))
			return res, nil
		}
		res.Iterations++

		b := queue[0]
		queue = queue[1:]
		delete(queued, b)

		changed, err := in.visit(b)
		if err != nil {
			return nil, errors.Wrapf(err, "interpret block %d", b.Index)
		}
		for _, s := range changed {
			if queued[s] {
				continue
			}
			queued[s] = true
			queue = append(queue, s)
		}
	}
	res.Converged = true
	log.Debug("fixpoint reached", zap.Int("iterations", res.Iterations))

	// One more pass over stable states to collect findings.
	for _, b := range fn.Blocks {
		state, ok := in.entry[b]
		if !ok || lattice.Unreachable(state) {
			continue
		}

		if err := in.observe(b, state, res); err != nil {
			return nil, errors.Wrapf(err, "observe block %d", b.Index)
		}
	}

	return res, nil
}

type interpreter[D lattice.Domain[D]] struct {
	opts   Options
	log    *zap.Logger
	entry  map[*ssa.BasicBlock]D
	visits map[*ssa.BasicBlock]int
}

// visit runs the block and propagates its exit state along every edge. Successors whose
// entry state grew are returned.
func (in *interpreter[D]) visit(b *ssa.BasicBlock) ([]*ssa.BasicBlock, error) {
	state := in.entry[b]
	if lattice.Unreachable(state) {
		return nil, nil
	}

	state, err := in.body(b, state, nil)
	if err != nil {
		return nil, err
	}
	if lattice.Unreachable(state) {
		return nil, nil
	}

	var changed []*ssa.BasicBlock
	for i, succ := range b.Succs {
		out, err := in.edge(b, i, state)
		if err != nil {
			return nil, errors.Wrapf(err, "edge %d -> %d", b.Index, succ.Index)
		}

		grown, err := in.join(succ, out)
		if err != nil {
			return nil, err
		}
		if grown {
			changed = append(changed, succ)
		}
	}

	return changed, nil
}

// body applies every non-phi instruction of the block. Divisions yielding no state are
// collected into divs when it is not nil.
func (in *interpreter[D]) body(b *ssa.BasicBlock, state D, divs *[]*ssa.BinOp) (D, error) {
	for _, instr := range b.Instrs {
		v, ok := instr.(ssa.Value)
		if !ok {
			continue
		}
		if _, ok := v.(*ssa.Phi); ok {
			continue
		}
		if !Tracked(v) {
			continue
		}

		id := Identifier(v)
		e, ok := Translate(v)
		if !ok {
			state = state.ForgetIdentifier(id)
			continue
		}

		next, err := state.Assign(id, e, instr, nil)
		if err != nil {
			return state, errors.Wrapf(err, "assign %s = %s", id, e)
		}
		if lattice.Unreachable(next) {
			if divs != nil && IsDivision(v) {
				*divs = append(*divs, v.(*ssa.BinOp))
			}
			return next, nil
		}
		state = next
	}

	return state, nil
}

// edge computes the state flowing along the i-th outgoing edge of the block.
func (in *interpreter[D]) edge(b *ssa.BasicBlock, i int, state D) (D, error) {
	if cond, ok := branch(b); ok {
		e, ok := Translate(cond.Cond)
		if !ok {
			e = Identifier(cond.Cond)
		}
		if i == 1 {
			e = expr.Not(e)
		}

		var err error
		state, err = state.Assume(e, cond, b.Succs[i], nil)
		if err != nil {
			return state, errors.Wrapf(err, "assume %s", e)
		}
		if lattice.Unreachable(state) {
			return state, nil
		}
	}

	return in.phis(b, b.Succs[i], state)
}

// phis assigns phi nodes of succ for the edge coming from pred. Phis are assigned in
// parallel, so operands go through temporaries first.
func (in *interpreter[D]) phis(pred, succ *ssa.BasicBlock, state D) (D, error) {
	k := -1
	for j, p := range succ.Preds {
		if p == pred {
			k = j
			break
		}
	}
	if k < 0 {
		return state, nil
	}

	var targets []expr.Identifier
	var temps []expr.Identifier
	for _, instr := range succ.Instrs {
		phi, ok := instr.(*ssa.Phi)
		if !ok {
			break
		}
		if !Tracked(phi) {
			continue
		}

		tmp := expr.Ident("phi·" + phi.Name())
		next, err := state.Assign(tmp, Operand(phi.Edges[k]), phi, nil)
		if err != nil {
			return state, errors.Wrapf(err, "assign %s", phi.Name())
		}
		state = next
		targets = append(targets, Identifier(phi))
		temps = append(temps, tmp)
	}

	for j, target := range targets {
		next, err := state.Assign(target, temps[j], succ, nil)
		if err != nil {
			return state, errors.Wrapf(err, "assign %s", target)
		}
		state = next
	}
	for _, tmp := range temps {
		state = state.ForgetIdentifier(tmp)
	}

	return state, nil
}

// join merges the incoming state into the entry of the block and tells if it grew.
func (in *interpreter[D]) join(b *ssa.BasicBlock, incoming D) (bool, error) {
	if lattice.Unreachable(incoming) {
		return false, nil
	}

	old, ok := in.entry[b]
	if !ok {
		in.entry[b] = incoming
		return true, nil
	}
	if incoming.LessOrEqual(old) {
		return false, nil
	}

	in.visits[b]++
	next := old.Lub(incoming)
	if in.visits[b] > in.opts.WideningThreshold {
		next = old.Widening(next)
		in.log.Debug("widening", zap.Int("block", b.Index), zap.Stringer("state", next))
	}
	in.entry[b] = next

	return true, nil
}

// observe reruns the block over its stable entry state and records findings.
func (in *interpreter[D]) observe(b *ssa.BasicBlock, state D, res *Result[D]) error {
	state, err := in.body(b, state, &res.Divisions)
	if err != nil {
		return err
	}
	if lattice.Unreachable(state) {
		return nil
	}

	cond, ok := branch(b)
	if !ok {
		return nil
	}

	e, ok := Translate(cond.Cond)
	if !ok {
		e = Identifier(cond.Cond)
	}
	sat, err := state.Satisfies(e, cond, nil)
	if err != nil {
		return errors.Wrapf(err, "check %s", e)
	}
	res.Conditions[cond] = sat

	return nil
}

func branch(b *ssa.BasicBlock) (*ssa.If, bool) {
	if len(b.Instrs) == 0 {
		return nil, false
	}

	cond, ok := b.Instrs[len(b.Instrs)-1].(*ssa.If)
	return cond, ok
}
