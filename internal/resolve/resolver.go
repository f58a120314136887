package resolve

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/zephyr-lang/zephyrc/internal/ast"
	"github.com/zephyr-lang/zephyrc/internal/builtin"
	"github.com/zephyr-lang/zephyrc/internal/errors"
	"github.com/zephyr-lang/zephyrc/internal/store"
	"github.com/zephyr-lang/zephyrc/internal/types"
)

// DeclKind tags what a cross-module Declaration names.
type DeclKind int

const (
	DeclFunc DeclKind = iota
	DeclType
)

// Declaration is one entry of the namespace input (spec.md §6): a symbol
// already compiled in another module, carrying enough information for this
// module's resolver to bind a call to it without re-resolving that module.
type Declaration struct {
	Kind       DeclKind
	Visibility ast.Visibility
	Signature  types.Type // KFun
	ID         FuncID
}

// Namespace is module-name → symbol → Declaration (spec.md §6).
type Namespace map[string]map[string]*Declaration

// scope is one lexical level: innermost wins on lookup (spec.md §4.1).
type scope struct {
	names  map[string]NameID
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]NameID), parent: parent}
}

func (s *scope) lookup(name string) (NameID, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if id, ok := cur.names[name]; ok {
			return id, true
		}
	}
	return 0, false
}

func (s *scope) declare(name string, id NameID) bool {
	if _, dup := s.names[name]; dup {
		return false
	}
	s.names[name] = id
	return true
}

// Resolver walks a parsed file and produces a ResolvedProgram. One Resolver
// is used per translation unit (spec.md §5: one module id per run).
type Resolver struct {
	mod   store.ModuleID
	ns    Namespace
	sink  errors.Sink
	names *store.Store[*Name]
	tvars *store.Store[*types.TypeVar]
	funcs *store.Store[*ResolvedFunc]

	// funcsByName resolves intra-module direct calls and catches duplicate
	// top-level declarations (RES002).
	funcsByName map[string]FuncID
	order       []FuncID
	constraints []types.Constraint
}

// NewResolver creates a resolver for one module.
func NewResolver(mod store.ModuleID, ns Namespace, sink errors.Sink) *Resolver {
	if ns == nil {
		ns = Namespace{}
	}
	return &Resolver{
		mod:         mod,
		ns:          ns,
		sink:        sink,
		names:       store.New[*Name](mod),
		tvars:       store.New[*types.TypeVar](mod),
		funcs:       store.New[*ResolvedFunc](mod),
		funcsByName: make(map[string]FuncID),
	}
}

// Resolve binds every identifier in file and returns the accumulated
// ResolvedProgram. Errors are reported to the sink; declarations that fail
// still produce a placeholder so later passes never see a hole (spec.md
// §7: "an error on one declaration does not stop others").
func (r *Resolver) Resolve(file *ast.File) *ResolvedProgram {
	// Pass 1: register every top-level function so forward/mutually
	// recursive calls resolve regardless of declaration order.
	for _, fn := range file.Funcs {
		r.predeclare(fn)
	}

	// Pass 2: resolve each function body against the now-complete function
	// namespace.
	for _, fn := range file.Funcs {
		r.resolveFunc(fn)
	}

	return &ResolvedProgram{
		Names:       r.names,
		TVars:       r.tvars,
		Funcs:       r.funcs,
		Order:       r.order,
		Constraints: r.constraints,
	}
}

func (r *Resolver) predeclare(fn *ast.FuncDecl) {
	name := normalizeIdent(fn.Ident)
	if _, dup := r.funcsByName[name]; dup {
		r.sink.Report(fn.Pos, errors.RES002, "duplicate declaration of function \""+fn.Ident+"\"")
		return
	}

	paramTypes := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		paramTypes[i] = declaredToConcrete(p.Type)
	}
	var retTypes []types.Type
	for _, rt := range fn.ReturnType {
		retTypes = append(retTypes, declaredToConcrete(rt))
	}
	if len(retTypes) == 0 {
		retTypes = []types.Type{types.Unit()}
	}

	funTVar := r.tvars.Add(types.NewTypeVar(fn.Pos, []types.Type{types.Fun(paramTypes, retTypes)}))
	id := r.funcs.Add(&ResolvedFunc{Ident: fn.Ident, FuncTVar: funTVar, Pos: fn.Pos})
	r.funcsByName[name] = id
	r.order = append(r.order, id)
}

func (r *Resolver) resolveFunc(fn *ast.FuncDecl) {
	name := normalizeIdent(fn.Ident)
	id, ok := r.funcsByName[name]
	if !ok {
		return // duplicate; already reported in predeclare
	}
	rf := r.funcs.MustGet(id)
	rf.ID = id
	rf.Visibility = fn.Visibility
	rf.Exposed = fn.Exposed

	if len(fn.ReturnType) > 1 {
		r.sink.Report(fn.Pos, errors.UNS003, "multi-return function signatures are not supported")
	}
	retType := types.Unit()
	if len(fn.ReturnType) == 1 {
		retType = declaredToConcrete(fn.ReturnType[0])
	}
	rf.ReturnTVar = r.tvars.Add(types.NewTypeVar(fn.Pos, []types.Type{retType}))

	top := newScope(nil)
	for _, p := range fn.Params {
		pTVar := r.tvars.Add(types.NewTypeVar(p.Pos, []types.Type{declaredToConcrete(p.Type)}))
		nid := r.names.Add(&Name{Source: p.Name, Loc: p.Pos, TVar: pTVar})
		if !top.declare(normalizeIdent(p.Name), nid) {
			r.sink.Report(p.Pos, errors.RES002, "duplicate parameter \""+p.Name+"\"")
			continue
		}
		rf.Params = append(rf.Params, nid)
	}

	switch b := fn.Body.(type) {
	case *ast.ZephyrBody:
		fc := &funcCtx{r: r, fn: rf, scope: top}
		rf.Body = &ZephyrBody{Block: fc.block(b.Block)}
	case *ast.AsmBody:
		rf.Body = &AsmBody{Stmts: b.Stmts}
	}
}

// funcCtx threads per-function resolution state (the current scope chain)
// through the recursive walk.
type funcCtx struct {
	r     *Resolver
	fn    *ResolvedFunc
	scope *scope
}

func (fc *funcCtx) push()       { fc.scope = newScope(fc.scope) }
func (fc *funcCtx) pop(s *scope) { fc.scope = s }

func (fc *funcCtx) block(b *ast.Block) *Block {
	saved := fc.scope
	fc.push()
	out := &Block{Pos: b.Pos}
	for _, s := range b.Stmts {
		out.Stmts = append(out.Stmts, fc.stmt(s))
	}
	fc.pop(saved)
	return out
}

func (fc *funcCtx) stmt(s ast.Stmt) Stmt {
	r := fc.r
	switch s := s.(type) {
	case *ast.Let:
		val := fc.expr(s.Value)
		tv := r.tvars.Add(types.NewTypeVar(s.Pos, []types.Type{types.Any()}))
		if s.Type != nil {
			tv = r.tvars.Add(types.NewTypeVar(s.Pos, []types.Type{declaredToConcrete(s.Type)}))
			r.constraints = append(r.constraints, &types.Included{A: val.TVar(), B: tv, Loc: s.Pos})
		} else {
			r.constraints = append(r.constraints, &types.Equality{A: tv, B: val.TVar(), Loc: s.Pos})
		}
		nid := r.names.Add(&Name{Source: s.Name, Loc: s.Pos, TVar: tv})
		if !fc.scope.declare(normalizeIdent(s.Name), nid) {
			r.sink.Report(s.Pos, errors.RES002, "duplicate declaration of \""+s.Name+"\"")
		}
		fc.fn.Locals = append(fc.fn.Locals, nid)
		return &Let{Name: nid, Value: val, Pos: s.Pos}

	case *ast.Assign:
		val := fc.expr(s.Value)
		nid, ok := fc.scope.lookup(normalizeIdent(s.Name))
		if !ok {
			r.sink.Report(s.Pos, errors.RES001, "unknown identifier \""+s.Name+"\"")
			return &Assign{Value: val, Pos: s.Pos}
		}
		name := r.names.MustGet(nid)
		r.constraints = append(r.constraints, &types.Equality{A: name.TVar, B: val.TVar(), Loc: s.Pos})
		return &Assign{Name: nid, Value: val, Pos: s.Pos}

	case *ast.ExprStmt:
		return &ExprStmt{Value: fc.expr(s.Expr), Pos: s.Pos}

	case *ast.Return:
		var val Expr
		if s.Value != nil {
			val = fc.expr(s.Value)
			r.constraints = append(r.constraints, &types.Equality{A: fc.fn.ReturnTVar, B: val.TVar(), Loc: s.Pos})
		}
		return &Return{Value: val, Pos: s.Pos}

	case *ast.If:
		cond := fc.expr(s.Cond)
		r.constraints = append(r.constraints, &types.Equality{A: cond.TVar(), B: r.boolTVar(s.Pos), Loc: s.Pos})
		then := fc.block(s.Then)
		var els *Block
		if s.Else != nil {
			els = fc.block(s.Else)
		}
		return &If{Cond: cond, Then: then, Else: els, Pos: s.Pos}

	case *ast.While:
		cond := fc.expr(s.Cond)
		r.constraints = append(r.constraints, &types.Equality{A: cond.TVar(), B: r.boolTVar(s.Pos), Loc: s.Pos})
		body := fc.block(s.Body)
		return &While{Cond: cond, Body: body, Pos: s.Pos}
	}
	panic("resolve: unreachable statement variant")
}

// resolveImported looks up a qualified call "module.symbol" against the
// namespace map supplied at construction time (spec.md §4.1, §6: "function
// scope within module scope within imported scope"). An unqualified name
// that matches no local function falls through to RES001 rather than this
// path — only dotted callees are treated as cross-module references.
func (r *Resolver) resolveImported(callee string, loc ast.Pos) (*Declaration, bool) {
	dot := strings.LastIndexByte(callee, '.')
	if dot < 0 {
		return nil, false
	}
	modName, symbol := callee[:dot], callee[dot+1:]

	symbols, ok := r.ns[modName]
	if !ok {
		r.sink.Report(loc, errors.RES003, "import not found: \""+modName+"\"")
		return nil, false
	}
	decl, ok := symbols[symbol]
	if !ok {
		r.sink.Report(loc, errors.RES001, "unknown function \""+callee+"\"")
		return nil, false
	}
	if decl.Visibility != ast.Public {
		r.sink.Report(loc, errors.RES004, "\""+callee+"\" is not public")
		return nil, false
	}
	return decl, true
}

func (r *Resolver) boolTVar(pos ast.Pos) store.ID {
	return r.tvars.Add(types.NewTypeVar(pos, []types.Type{types.Bool()}))
}

func (fc *funcCtx) expr(e ast.Expr) Expr {
	r := fc.r
	switch e := e.(type) {
	case *ast.Literal:
		var cands []types.Type
		switch e.Kind {
		case ast.IntLit:
			cands = types.IntegerCandidates()
		case ast.FloatLit:
			cands = types.FloatCandidates()
		case ast.BoolLit:
			cands = []types.Type{types.Bool()}
		case ast.StringLit:
			cands = []types.Type{types.Str()}
		}
		tv := r.tvars.Add(types.NewTypeVar(e.Pos, cands))
		return &Literal{base: base{Pos: e.Pos, Tv: tv}, Kind: e.Kind, Value: e.Value}

	case *ast.Identifier:
		nid, ok := fc.scope.lookup(normalizeIdent(e.Name))
		tv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{types.Any()}))
		if !ok {
			r.sink.Report(e.Pos, errors.RES001, "unknown identifier \""+e.Name+"\"")
			return &Var{base: base{Pos: e.Pos, Tv: tv}, Name: 0}
		}
		name := r.names.MustGet(nid)
		r.constraints = append(r.constraints, &types.Equality{A: tv, B: name.TVar, Loc: e.Pos})
		return &Var{base: base{Pos: e.Pos, Tv: tv}, Name: nid}

	case *ast.Binary:
		left := fc.expr(e.Left)
		right := fc.expr(e.Right)
		switch e.Op {
		case ast.OpAnd, ast.OpOr:
			bl := r.boolTVar(e.Pos)
			r.constraints = append(r.constraints, &types.Equality{A: left.TVar(), B: bl, Loc: e.Pos})
			br := r.boolTVar(e.Pos)
			r.constraints = append(r.constraints, &types.Equality{A: right.TVar(), B: br, Loc: e.Pos})
			tv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{types.Bool()}))
			return &Binary{base: base{Pos: e.Pos, Tv: tv}, Left: left, Right: right, Op: e.Op}

		case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
			r.constraints = append(r.constraints, &types.Equality{A: left.TVar(), B: right.TVar(), Loc: e.Pos})
			tv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{types.Bool()}))
			return &Binary{base: base{Pos: e.Pos, Tv: tv}, Left: left, Right: right, Op: e.Op}

		default: // arithmetic, including remainder
			r.constraints = append(r.constraints, &types.Equality{A: left.TVar(), B: right.TVar(), Loc: e.Pos})
			numCtx := r.tvars.Add(types.NewTypeVar(e.Pos, append(types.IntegerCandidates(), types.FloatCandidates()...)))
			r.constraints = append(r.constraints, &types.Included{A: left.TVar(), B: numCtx, Loc: e.Pos})
			tv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{types.Any()}))
			r.constraints = append(r.constraints, &types.Equality{A: tv, B: left.TVar(), Loc: e.Pos})
			return &Binary{base: base{Pos: e.Pos, Tv: tv}, Left: left, Right: right, Op: e.Op}
		}

	case *ast.Unary:
		operand := fc.expr(e.Expr)
		tv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{types.Any()}))
		if e.Op == ast.OpNot {
			b := r.boolTVar(e.Pos)
			r.constraints = append(r.constraints, &types.Equality{A: operand.TVar(), B: b, Loc: e.Pos})
		}
		r.constraints = append(r.constraints, &types.Equality{A: tv, B: operand.TVar(), Loc: e.Pos})
		return &Unary{base: base{Pos: e.Pos, Tv: tv}, Operand: operand, Op: e.Op}

	case *ast.CallDirect:
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = fc.expr(a)
		}
		tv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{types.Any()}))

		if sig, ok := builtin.Lookup(e.Callee); ok {
			funTv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{sig}))
			bindCallArgs(r, args, sig.Params, e.Pos)
			r.constraints = append(r.constraints, &types.Return{FunTV: funTv, RetTV: tv, Loc: e.Pos})
			return &CallDirect{base: base{Pos: e.Pos, Tv: tv}, Callee: 0, Args: args}
		}

		if fid, ok := r.funcsByName[normalizeIdent(e.Callee)]; ok {
			callee := r.funcs.MustGet(fid)
			if len(args) != len(callee.Params) {
				r.sink.Report(e.Pos, errors.TYP003, "wrong number of arguments to \""+e.Callee+"\"")
			}
			r.constraints = append(r.constraints, &types.Return{FunTV: callee.FuncTVar, RetTV: tv, Loc: e.Pos})
			bindCallArgsToParams(r, args, callee, e.Pos)
			return &CallDirect{base: base{Pos: e.Pos, Tv: tv}, Callee: fid, Args: args}
		}

		if decl, ok := r.resolveImported(e.Callee, e.Pos); ok {
			funTv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{decl.Signature}))
			bindCallArgs(r, args, decl.Signature.Params, e.Pos)
			r.constraints = append(r.constraints, &types.Return{FunTV: funTv, RetTV: tv, Loc: e.Pos})
			return &CallDirect{base: base{Pos: e.Pos, Tv: tv}, Callee: decl.ID, Args: args}
		}

		r.sink.Report(e.Pos, errors.RES001, "unknown function \""+e.Callee+"\"")
		return &CallDirect{base: base{Pos: e.Pos, Tv: tv}, Args: args}

	case *ast.CallIndirect:
		callee := fc.expr(e.Callee)
		args := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			args[i] = fc.expr(a)
		}
		tv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{types.Bug()}))
		r.sink.Report(e.Pos, errors.UNS001, "indirect calls are not supported")
		return &CallIndirect{base: base{Pos: e.Pos, Tv: tv}, Callee: callee, Args: args}

	case *ast.FunctionRef:
		tv := r.tvars.Add(types.NewTypeVar(e.Pos, []types.Type{types.Bug()}))
		fid, ok := r.funcsByName[normalizeIdent(e.Name)]
		if !ok {
			r.sink.Report(e.Pos, errors.RES001, "unknown function \""+e.Name+"\"")
		}
		r.sink.Report(e.Pos, errors.UNS002, "first-class function values are not supported")
		return &FunctionRef{base: base{Pos: e.Pos, Tv: tv}, Target: fid}
	}
	panic("resolve: unreachable expression variant")
}

// bindCallArgsToParams narrows each argument's candidates into the
// corresponding parameter's declared type without altering the parameter's
// own type variable — the Included constraint's documented purpose
// (spec.md §3 "literal-to-context narrowing").
func bindCallArgsToParams(r *Resolver, args []Expr, callee *ResolvedFunc, loc ast.Pos) {
	for i, a := range args {
		if i >= len(callee.Params) {
			return
		}
		paramName := r.names.MustGet(callee.Params[i])
		r.constraints = append(r.constraints, &types.Included{A: a.TVar(), B: paramName.TVar, Loc: loc})
	}
}

func bindCallArgs(r *Resolver, args []Expr, paramTypes []types.Type, loc ast.Pos) {
	for i, a := range args {
		if i >= len(paramTypes) {
			return
		}
		ctx := r.tvars.Add(types.NewTypeVar(loc, []types.Type{paramTypes[i]}))
		r.constraints = append(r.constraints, &types.Included{A: a.TVar(), B: ctx, Loc: loc})
	}
}

func declaredToConcrete(d *ast.DeclaredType) types.Type {
	if d == nil {
		return types.Any()
	}
	switch d.Name {
	case "unit":
		return types.Unit()
	case "bool":
		return types.Bool()
	case "i32":
		return types.I32()
	case "i64":
		return types.I64()
	case "f32":
		return types.F32()
	case "f64":
		return types.F64()
	default:
		return types.Any()
	}
}

// normalizeIdent applies NFC normalization so that visually identical but
// differently-encoded source identifiers collide deterministically
// (SPEC_FULL §11).
func normalizeIdent(name string) string {
	return norm.NFC.String(name)
}
