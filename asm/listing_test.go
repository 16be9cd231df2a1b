package asm

import (
	"strings"
	"testing"
)

func TestListingFormat(t *testing.T) {
	toks := assemble(t, "; a header comment", "nop")
	out := Listing("VM16 ASSEMBLER       File: test.asm", toks)

	if !strings.Contains(out, "; a header comment") {
		t.Errorf("comment line missing from listing:\n%s", out)
	}
	if !strings.Contains(out, "0000: 0000") {
		t.Errorf("code line missing from listing:\n%s", out)
	}
}

func TestListingIncludesDataTokens(t *testing.T) {
	toks := assemble(t, ".data", "1 2 3")
	out := Listing("h", toks)
	if !strings.Contains(out, "0000: 0001, 0002, 0003") {
		t.Errorf("data token not rendered in listing:\n%s", out)
	}
}
