package asm

import (
	"regexp"
	"strings"

	"github.com/joe7575/vm16"
)

var (
	reAlias = regexp.MustCompile(`^([A-Za-z_][A-Za-z_0-9]*)\s*=\s*(\S+)`)
	reLabel = regexp.MustCompile(`^([A-Za-z_][A-Za-z_0-9]*):\s*(.*)$`)
)

// pass1 walks the raw line stream once, resolving segment directives,
// aliases and labels, and sizing every Code/Data/WordText/ByteText line. It
// never touches the symbol table's Resolve side: forward references to
// labels are exactly what pass 1 makes possible.
type pass1 struct {
	ft      *FileTable
	syms    *SymbolTable
	aliases *AliasTable
	segment Kind
	addr    vm16.Word
}

func newPass1(ft *FileTable) *pass1 {
	return &pass1{
		ft:      ft,
		syms:    NewSymbolTable(),
		aliases: NewAliasTable(),
		segment: KindCode,
	}
}

// Run processes every raw line, returning the token stream pass 2 consumes.
func (p *pass1) Run(lines []RawLine) ([]Token, error) {
	var tokens []Token
	for _, raw := range lines {
		tok, err := p.line(raw)
		if err != nil {
			return nil, err
		}
		if tok != nil {
			tokens = append(tokens, *tok)
		}
	}
	return tokens, nil
}

func (p *pass1) errf(raw RawLine, kind ErrorKind, format string, args ...interface{}) *Error {
	return newError(kind, p.ft.Path(raw.FileRef), raw.LineNo, format, args...)
}

func (p *pass1) line(raw RawLine) (*Token, error) {
	line := raw.Text
	if i := strings.IndexByte(line, ';'); i >= 0 {
		line = line[:i]
	}
	line = strings.TrimRight(line, " \t\r")
	line = strings.ReplaceAll(line, ",", " ")
	line = strings.ReplaceAll(line, "\t", "    ")

	if strings.TrimSpace(line) == "" {
		return p.comment(raw), nil
	}

	trimmed := strings.TrimSpace(line)
	fields := strings.Fields(trimmed)

	switch fields[0] {
	case ".code":
		p.segment = KindCode
		return nil, nil
	case ".data":
		p.segment = KindData
		return nil, nil
	case ".text":
		p.segment = KindWordText
		return nil, nil
	case ".btext":
		p.segment = KindByteText
		return nil, nil
	case ".org":
		if len(fields) < 2 {
			return nil, p.errf(raw, ErrInvalidLiteral, "'.org' requires an address")
		}
		addr, err := ParseValue(fields[1])
		if err != nil {
			return nil, p.errf(raw, ErrInvalidLiteral, "bad .org address %q: %v", fields[1], err)
		}
		p.addr = addr
		return nil, nil
	}

	if m := reAlias.FindStringSubmatch(trimmed); m != nil {
		p.aliases.Set(m[1], m[2])
		return nil, nil
	}

	// A line may chain several labels ("A: loop: jump +loop"), each sharing
	// the same address; strip and register them all before classifying
	// whatever instruction or data remains.
	for {
		m := reLabel.FindStringSubmatch(trimmed)
		if m == nil {
			break
		}
		if err := p.syms.AddLabel(m[1], p.addr); err != nil {
			return nil, p.errf(raw, ErrDuplicateLabel, "%v", err)
		}
		rest := strings.TrimSpace(m[2])
		if rest == "" {
			return nil, nil
		}
		trimmed = rest
		fields = strings.Fields(trimmed)
	}

	switch p.segment {
	case KindWordText:
		return p.text(raw, trimmed, parseWordText)
	case KindByteText:
		return p.text(raw, trimmed, parseByteText)
	case KindData:
		return p.data(raw, fields)
	default:
		return p.code(raw, fields)
	}
}

func (p *pass1) comment(raw RawLine) *Token {
	return &Token{
		FileRef:     raw.FileRef,
		LineNo:      raw.LineNo,
		LineStr:     raw.Text,
		Kind:        KindComment,
		LabelPrefix: p.syms.Epoch(),
		Address:     p.addr,
		Size:        0,
	}
}

func (p *pass1) text(raw RawLine, body string, parse func(string) ([]vm16.Word, bool)) (*Token, error) {
	lits, ok := parse(body)
	if !ok {
		return nil, p.errf(raw, ErrInvalidLiteral, "malformed quoted string: %q", body)
	}
	tok := &Token{
		FileRef:     raw.FileRef,
		LineNo:      raw.LineNo,
		LineStr:     raw.Text,
		Kind:        p.segment,
		LabelPrefix: p.syms.Epoch(),
		Address:     p.addr,
		Size:        len(lits),
		Literals:    lits,
	}
	p.addr += vm16.Word(len(lits))
	return tok, nil
}

func (p *pass1) data(raw RawLine, fields []string) (*Token, error) {
	lits := make([]vm16.Word, 0, len(fields))
	for _, f := range fields {
		v, err := ParseValue(f)
		if err != nil {
			return nil, p.errf(raw, ErrInvalidLiteral, "bad literal %q: %v", f, err)
		}
		lits = append(lits, v)
	}
	tok := &Token{
		FileRef:     raw.FileRef,
		LineNo:      raw.LineNo,
		LineStr:     raw.Text,
		Kind:        KindData,
		LabelPrefix: p.syms.Epoch(),
		Address:     p.addr,
		Size:        len(lits),
		Literals:    lits,
	}
	p.addr += vm16.Word(len(lits))
	return tok, nil
}

func (p *pass1) code(raw RawLine, fields []string) (*Token, error) {
	mnemonic := fields[0]
	opcode, ok := vm16.Lookup(mnemonic)
	if !ok {
		return nil, p.errf(raw, ErrUnknownInstruction, "unknown instruction %q", mnemonic)
	}

	var size int
	if vm16.IsShortImm(opcode) {
		size = 1
	} else {
		fields = operandCorrection(fields)
		op1, op2 := operandAt(fields, 1), operandAt(fields, 2)
		size = 1 + p.operandSize(op1) + p.operandSize(op2)
	}

	tok := &Token{
		FileRef:     raw.FileRef,
		LineNo:      raw.LineNo,
		LineStr:     raw.Text,
		Kind:        KindCode,
		LabelPrefix: p.syms.Epoch(),
		Address:     p.addr,
		Size:        size,
		Words:       fields,
	}
	p.addr += vm16.Word(size)
	return tok, nil
}

func operandAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

// operandCorrection prefixes a bare jump-target operand (not already
// starting with '#', '+' or '-') with '#', turning it into an immediate
// label reference, for mnemonics in vm16.JumpMnemonics.
func operandCorrection(fields []string) []string {
	if !vm16.JumpMnemonics[fields[0]] {
		return fields
	}
	i := -1
	switch len(fields) {
	case 2:
		i = 1
	case 3:
		i = 2
	default:
		return fields
	}
	op := fields[i]
	if op == "" {
		return fields
	}
	switch op[0] {
	case '#', '+', '-':
		return fields
	}
	out := append([]string(nil), fields...)
	out[i] = "#" + op
	return out
}

// operandSize is 0 if s is absent, 0 if s (after raw alias expansion) names
// a register/indirect/#0/#1 form, else 1.
func (p *pass1) operandSize(s string) int {
	if s == "" {
		return 0
	}
	s = p.aliases.RawExpand(s)
	switch s {
	case "#0", "#1", "#$0", "#$1":
		return 0
	}
	switch s[0] {
	case '#', '+', '-':
		return 1
	}
	if _, ok := vm16.LookupBareOperand(s); ok {
		return 0
	}
	return 1
}
