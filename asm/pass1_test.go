package asm

import "testing"

func rawLines(lines ...string) []RawLine {
	out := make([]RawLine, len(lines))
	for i, l := range lines {
		out[i] = RawLine{FileRef: 0, LineNo: i + 1, Text: l}
	}
	return out
}

func runPass1(t *testing.T, lines ...string) []Token {
	t.Helper()
	p := newPass1(newFileTable())
	toks, err := p.Run(rawLines(lines...))
	if err != nil {
		t.Fatalf("pass1 failed: %v", err)
	}
	return toks
}

func TestPass1Sizes(t *testing.T) {
	toks := runPass1(t, "nop", "move A, B", "move A, #$1234")
	want := []int{1, 1, 2}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Size != w {
			t.Errorf("token %d size = %d, want %d", i, toks[i].Size, w)
		}
	}
	if toks[1].Address != 1 || toks[2].Address != 2 {
		t.Errorf("addresses not accumulated: %+v", toks)
	}
}

func TestPass1JumpTargetCorrection(t *testing.T) {
	toks := runPass1(t, ".org $0100", "start: jump start")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	tok := toks[0]
	if tok.Address != 0x0100 {
		t.Errorf("address = %#04x, want $0100", uint16(tok.Address))
	}
	if tok.Size != 2 {
		t.Errorf("size = %d, want 2", tok.Size)
	}
	if len(tok.Words) != 2 || tok.Words[1] != "#start" {
		t.Errorf("words = %v, want [jump #start]", tok.Words)
	}
}

func TestPass1UnknownInstruction(t *testing.T) {
	p := newPass1(newFileTable())
	_, err := p.Run(rawLines("frobnicate A, B"))
	if err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
	asmErr, ok := err.(*Error)
	if !ok || asmErr.Kind != ErrUnknownInstruction {
		t.Errorf("got %v, want an ErrUnknownInstruction *Error", err)
	}
}

func TestPass1ChainedLabels(t *testing.T) {
	toks := runPass1(t, "A: loop: nop")
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	p := newPass1(newFileTable())
	_, err := p.Run(rawLines("A: loop: nop"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.syms.Resolve("A", 0); !ok {
		t.Error("global label A was not registered")
	}
	// Resolving the global A above bumped the live epoch, so look the local
	// label up under the token's frozen label prefix instead.
	if _, ok := p.syms.Resolve("loop", toks[0].LabelPrefix); !ok {
		t.Error("local label loop was not registered")
	}
}

func TestPass1DataAndText(t *testing.T) {
	toks := runPass1(t, ".data", "1 2 3", ".text", `"AB"`)
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Kind != KindData || toks[0].Size != 3 {
		t.Errorf("data token: %+v", toks[0])
	}
	if toks[1].Kind != KindWordText || toks[1].Size != 2 {
		t.Errorf("text token: %+v", toks[1])
	}
}

