package asm

import (
	"regexp"

	"github.com/joe7575/vm16"
)

var (
	reConst = regexp.MustCompile(`^#(\$?[0-9A-Fa-fx]+)$`)
	reAddr  = regexp.MustCompile(`^(\$?[0-9A-Fa-fx]+)$`)
	reRel   = regexp.MustCompile(`^([+-])(\$?[0-9A-Fa-fx]+)$`)
	reStack = regexp.MustCompile(`^\[SP\+(\$?[0-9A-Fa-fx]+)\]$`)
)

// pass2 encodes every Code token's mnemonic and operands into 1-3 words,
// resolving label references against the (now complete) symbol table built
// by pass 1. Data/WordText/ByteText tokens need no work beyond copying their
// already-resolved literals.
type pass2 struct {
	ft      *FileTable
	syms    *SymbolTable
	aliases *AliasTable
}

func newPass2(ft *FileTable, syms *SymbolTable, aliases *AliasTable) *pass2 {
	return &pass2{ft: ft, syms: syms, aliases: aliases}
}

// Run encodes tokens in place, returning the same slice with Code filled in.
func (p *pass2) Run(tokens []Token) ([]Token, error) {
	for i := range tokens {
		tok := &tokens[i]
		switch tok.Kind {
		case KindCode:
			code, err := p.encode(tok)
			if err != nil {
				return nil, err
			}
			tok.Code = code
		case KindData, KindWordText, KindByteText:
			tok.Code = tok.Literals
		}
	}
	return tokens, nil
}

func (p *pass2) errf(tok *Token, kind ErrorKind, format string, args ...interface{}) *Error {
	return newError(kind, p.ft.Path(tok.FileRef), tok.LineNo, format, args...)
}

func (p *pass2) encode(tok *Token) ([]vm16.Word, error) {
	opcode, ok := vm16.Lookup(tok.Words[0])
	if !ok {
		return nil, p.errf(tok, ErrUnknownInstruction, "unknown instruction %q", tok.Words[0])
	}
	instr := vm16.Instructions[opcode]

	numOpnds := 0
	if instr.Opnd1 != vm16.GroupNone {
		numOpnds++
	}
	if instr.Opnd2 != vm16.GroupNone {
		numOpnds++
	}
	numHas := len(tok.Words) - 1
	if numOpnds != numHas {
		return nil, p.errf(tok, ErrWrongOperandCount, "%q expects %d operand(s), got %d", tok.Words[0], numOpnds, numHas)
	}

	var code []vm16.Word
	if vm16.IsShortImm(opcode) {
		var num vm16.Word
		if numHas == 1 {
			v, err := ParseValue(tok.Words[1])
			if err != nil {
				return nil, p.errf(tok, ErrInvalidLiteral, "bad literal %q: %v", tok.Words[1], err)
			}
			num = v % 1024
		}
		code = []vm16.Word{vm16.EncodeOpcodeWord(opcode, 0, 0) | num}
	} else {
		op1, op2 := operandAt(tok.Words, 1), operandAt(tok.Words, 2)
		mode1, val1, has1, err := p.operand(tok, op1)
		if err != nil {
			return nil, err
		}
		mode2, val2, has2, err := p.operand(tok, op2)
		if err != nil {
			return nil, err
		}
		if op1 != "" && !vm16.ValidOperand(instr.Opnd1, vm16.OperandNames[mode1]) {
			return nil, p.errf(tok, ErrInvalidOperandType, "operand 1 %q invalid for %q", op1, tok.Words[0])
		}
		if op2 != "" && !vm16.ValidOperand(instr.Opnd2, vm16.OperandNames[mode2]) {
			return nil, p.errf(tok, ErrInvalidOperandType, "operand 2 %q invalid for %q", op2, tok.Words[0])
		}
		code = []vm16.Word{vm16.EncodeOpcodeWord(opcode, mode1, mode2)}
		if has1 {
			code = append(code, val1)
		}
		if has2 {
			code = append(code, val2)
		}
	}

	if len(code) != tok.Size {
		return nil, p.errf(tok, ErrInternalSizeMismatch, "encoded %d word(s), pass 1 sized %d", len(code), tok.Size)
	}
	return code, nil
}

// operand classifies a single operand string (already alias-expanded here)
// into its mode and, where the mode carries a trailing word, that word's
// value. s == "" means the operand slot is unused by this instruction.
func (p *pass2) operand(tok *Token, s string) (vm16.OperandMode, vm16.Word, bool, error) {
	if s == "" {
		return 0, 0, false, nil
	}
	s = p.aliases.Expand(s)

	if m, ok := vm16.LookupBareOperand(s); ok {
		return m, 0, false, nil
	}
	if s == "#$0" {
		return vm16.ModeImm0, 0, false, nil
	}
	if s == "#$1" {
		return vm16.ModeImm1, 0, false, nil
	}
	if m := reConst.FindStringSubmatch(s); m != nil {
		v, err := ParseValue(m[1])
		if err != nil {
			return 0, 0, false, p.errf(tok, ErrInvalidLiteral, "bad literal %q: %v", m[1], err)
		}
		return vm16.ModeIMM, v, true, nil
	}
	if m := reAddr.FindStringSubmatch(s); m != nil {
		v, err := ParseValue(m[1])
		if err != nil {
			return 0, 0, false, p.errf(tok, ErrInvalidLiteral, "bad literal %q: %v", m[1], err)
		}
		return vm16.ModeIND, v, true, nil
	}
	if m := reRel.FindStringSubmatch(s); m != nil {
		v, err := ParseValue(m[2])
		if err != nil {
			return 0, 0, false, p.errf(tok, ErrInvalidLiteral, "bad literal %q: %v", m[2], err)
		}
		off := v
		if m[1] == "-" {
			off = vm16.Word((0x10000 - int(v)) & 0xFFFF)
		}
		return vm16.ModeREL, off, true, nil
	}
	if m := reStack.FindStringSubmatch(s); m != nil {
		v, err := ParseValue(m[1])
		if err != nil {
			return 0, 0, false, p.errf(tok, ErrInvalidLiteral, "bad literal %q: %v", m[1], err)
		}
		return vm16.ModeStackRel, v, true, nil
	}
	if s[0] == '#' {
		name := s[1:]
		addr, ok := p.syms.Resolve(name, tok.LabelPrefix)
		if !ok {
			return 0, 0, false, p.errf(tok, ErrUnknownSymbol, "undefined label %q", name)
		}
		return vm16.ModeIMM, addr, true, nil
	}
	if s[0] == '+' || s[0] == '-' {
		name := s[1:]
		dst, ok := p.syms.Resolve(name, tok.LabelPrefix)
		if !ok {
			return 0, 0, false, p.errf(tok, ErrUnknownSymbol, "undefined label %q", name)
		}
		off := vm16.Word((0x10000 + int(dst) - int(tok.Address) - 2) & 0xFFFF)
		return vm16.ModeREL, off, true, nil
	}
	addr, ok := p.syms.Resolve(s, tok.LabelPrefix)
	if !ok {
		return 0, 0, false, p.errf(tok, ErrUnknownSymbol, "undefined label %q", s)
	}
	return vm16.ModeIND, addr, true, nil
}
