// Package gen turns compiled automata into standalone Go source code.
//
// The generated file depends on nothing but the language itself: epsilon
// closures are resolved at generation time and baked into bitset tables, so
// the emitted matcher is a single loop over the input with one bitwise
// union per transition.
package gen

import (
	"bytes"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/thaumasiotes/regexp/nfa"
	"github.com/thaumasiotes/regexp/syntax"
)

// Mode selects which acceptance discipline the generated function uses.
type Mode int

const (
	// ModeMatch emits a function that accepts only when the whole input
	// is in the pattern's language.
	ModeMatch Mode = iota
	// ModeSearch emits a function that accepts when any substring of the
	// input is in the pattern's language.
	ModeSearch
)

func (m Mode) String() string {
	switch m {
	case ModeMatch:
		return "match"
	case ModeSearch:
		return "search"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Config describes one generated matcher.
type Config struct {
	Pattern string // pattern to compile
	Package string // package clause of the generated file; "main" when empty
	Func    string // name of the generated function; "Match" when empty
	Mode    Mode
}

// Generator holds a compiled pattern together with the precomputed tables
// the emitted code embeds.
type Generator struct {
	cfg Config
	n   *nfa.NFA

	words        int        // uint64 words per state set
	startClosure []uint64   // epsilon closure of the start state
	charStates   []uint32   // states that consume a byte, in id order
	charBytes    []string   // accepted bytes per entry of charStates
	onByte       [][]uint64 // closure of the successor per entry of charStates
}

// New parses and compiles cfg.Pattern and precomputes the transition
// tables. The error is a *syntax.SyntaxError when the pattern is malformed.
func New(cfg Config) (*Generator, error) {
	if cfg.Package == "" {
		cfg.Package = "main"
	}
	if cfg.Func == "" {
		cfg.Func = "Match"
	}

	re, err := syntax.Parse(cfg.Pattern)
	if err != nil {
		return nil, err
	}
	n := nfa.Compile(re)

	g := &Generator{
		cfg:   cfg,
		n:     n,
		words: (n.States() + 63) / 64,
	}
	g.startClosure = g.closure(n.Start())

	for id := 0; id < n.States(); id++ {
		s := n.State(nfa.StateID(id))
		switch s.Kind() {
		case nfa.StateByte:
			b, next := s.Byte()
			g.charStates = append(g.charStates, uint32(id))
			g.charBytes = append(g.charBytes, string([]byte{b}))
			g.onByte = append(g.onByte, g.closure(next))
		case nfa.StateClass:
			members, next := s.Class()
			g.charStates = append(g.charStates, uint32(id))
			g.charBytes = append(g.charBytes, string(members))
			g.onByte = append(g.onByte, g.closure(next))
		}
	}
	return g, nil
}

// closure computes the epsilon closure of id as a bitset.
func (g *Generator) closure(id nfa.StateID) []uint64 {
	set := make([]uint64, g.words)
	stack := []nfa.StateID{id}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nfa.InvalidState || set[cur>>6]&(1<<(cur&63)) != 0 {
			continue
		}
		set[cur>>6] |= 1 << (cur & 63)
		s := g.n.State(cur)
		switch s.Kind() {
		case nfa.StateEpsilon:
			stack = append(stack, s.Epsilon())
		case nfa.StateSplit:
			left, right := s.Split()
			stack = append(stack, left, right)
		}
	}
	return set
}

// startAccepts reports whether the empty input is accepted.
func (g *Generator) startAccepts() bool {
	m := g.n.Match()
	return g.startClosure[m>>6]&(1<<(m&63)) != 0
}

// Generate renders the Go source for the configured matcher.
func (g *Generator) Generate() ([]byte, error) {
	var buf bytes.Buffer
	if err := g.file().Render(&buf); err != nil {
		return nil, fmt.Errorf("render %q: %w", g.cfg.Pattern, err)
	}
	return buf.Bytes(), nil
}

// Save renders the Go source and writes it to path.
func (g *Generator) Save(path string) error {
	if err := g.file().Save(path); err != nil {
		return fmt.Errorf("save %q to %s: %w", g.cfg.Pattern, path, err)
	}
	return nil
}

func (g *Generator) file() *jen.File {
	f := jen.NewFile(g.cfg.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by regexpgen for pattern %q; DO NOT EDIT.", g.cfg.Pattern))

	f.Func().Id(g.cfg.Func).
		Params(jen.Id("input").String()).
		Params(jen.Bool()).
		Block(g.body(jen.Id("input"))...)
	f.Line()

	f.Func().Id(g.cfg.Func + "Bytes").
		Params(jen.Id("input").Index().Byte()).
		Params(jen.Bool()).
		Block(g.body(jen.Id("input"))...)

	return f
}

// body emits the simulation loop. String and byte slice inputs index the
// same way, so both wrappers share it.
func (g *Generator) body(input *jen.Statement) []jen.Code {
	if g.cfg.Mode == ModeSearch && g.startAccepts() {
		return []jen.Code{
			jen.Comment("The empty substring already matches."),
			jen.Return(jen.True()),
		}
	}

	code := []jen.Code{
		jen.Comment("Transition tables; closures are precomputed per successor."),
		jen.Id("charStates").Op(":=").Index(jen.Lit(len(g.charStates))).Uint32().Values(uint32Literals(g.charStates)...),
		jen.Id("charBytes").Op(":=").Index(jen.Lit(len(g.charBytes))).String().Values(stringLiterals(g.charBytes)...),
		jen.Id("onByte").Op(":=").Index(jen.Lit(len(g.onByte))).Index(jen.Lit(g.words)).Uint64().Values(bitsetLiterals(g.onByte)...),
		jen.Line(),
		jen.Id("current").Op(":=").Index(jen.Lit(g.words)).Uint64().Values(uint64Literals(g.startClosure)...),
	}

	if g.cfg.Mode == ModeSearch {
		code = append(code,
			jen.Id("start").Op(":=").Id("current"),
		)
	}

	loop := []jen.Code{
		jen.Id("c").Op(":=").Add(input.Clone()).Index(jen.Id("i")),
		jen.Var().Id("next").Index(jen.Lit(g.words)).Uint64(),
		jen.For(jen.List(jen.Id("j"), jen.Id("s")).Op(":=").Range().Id("charStates")).Block(
			jen.If(jen.Id("current").Index(jen.Id("s").Op(">>").Lit(6)).Op("&").Parens(jen.Uint64().Call(jen.Lit(1)).Op("<<").Parens(jen.Id("s").Op("&").Lit(63))).Op("==").Lit(0)).Block(
				jen.Continue(),
			),
			jen.Id("accepted").Op(":=").False(),
			jen.For(jen.Id("k").Op(":=").Lit(0), jen.Id("k").Op("<").Len(jen.Id("charBytes").Index(jen.Id("j"))), jen.Id("k").Op("++")).Block(
				jen.If(jen.Id("charBytes").Index(jen.Id("j")).Index(jen.Id("k")).Op("==").Id("c")).Block(
					jen.Id("accepted").Op("=").True(),
					jen.Break(),
				),
			),
			jen.If(jen.Op("!").Id("accepted")).Block(
				jen.Continue(),
			),
			jen.For(jen.Id("w").Op(":=").Range().Id("next")).Block(
				jen.Id("next").Index(jen.Id("w")).Op("|=").Id("onByte").Index(jen.Id("j")).Index(jen.Id("w")),
			),
		),
	}

	switch g.cfg.Mode {
	case ModeMatch:
		loop = append(loop,
			jen.Comment("No live states: no extension of the input can recover."),
			jen.Id("dead").Op(":=").True(),
			jen.For(jen.Id("w").Op(":=").Range().Id("next")).Block(
				jen.If(jen.Id("next").Index(jen.Id("w")).Op("!=").Lit(0)).Block(
					jen.Id("dead").Op("=").False(),
					jen.Break(),
				),
			),
			jen.If(jen.Id("dead")).Block(
				jen.Return(jen.False()),
			),
			jen.Id("current").Op("=").Id("next"),
		)
	case ModeSearch:
		loop = append(loop,
			jen.Comment("A fresh attempt may begin at the next position."),
			jen.For(jen.Id("w").Op(":=").Range().Id("next")).Block(
				jen.Id("next").Index(jen.Id("w")).Op("|=").Id("start").Index(jen.Id("w")),
			),
			jen.If(g.acceptExpr("next")).Block(
				jen.Return(jen.True()),
			),
			jen.Id("current").Op("=").Id("next"),
		)
	}

	code = append(code,
		jen.Line(),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Len(input.Clone()), jen.Id("i").Op("++")).Block(loop...),
		jen.Line(),
	)

	switch g.cfg.Mode {
	case ModeMatch:
		code = append(code, jen.Return(g.acceptExpr("current")))
	case ModeSearch:
		code = append(code, jen.Return(jen.False()))
	}
	return code
}

// acceptExpr tests the match state's bit in the named set.
func (g *Generator) acceptExpr(set string) *jen.Statement {
	m := uint32(g.n.Match())
	return jen.Id(set).Index(jen.Lit(int(m >> 6))).
		Op("&").Parens(jen.Lit(1).Op("<<").Lit(int(m & 63))).
		Op("!=").Lit(0)
}

func uint32Literals(vs []uint32) []jen.Code {
	out := make([]jen.Code, len(vs))
	for i, v := range vs {
		out[i] = jen.Lit(int(v))
	}
	return out
}

func uint64Literals(vs []uint64) []jen.Code {
	out := make([]jen.Code, len(vs))
	for i, v := range vs {
		out[i] = jen.Lit(v)
	}
	return out
}

func stringLiterals(vs []string) []jen.Code {
	out := make([]jen.Code, len(vs))
	for i, v := range vs {
		out[i] = jen.Lit(v)
	}
	return out
}

func bitsetLiterals(sets [][]uint64) []jen.Code {
	out := make([]jen.Code, len(sets))
	for i, set := range sets {
		out[i] = jen.Values(uint64Literals(set)...)
	}
	return out
}
