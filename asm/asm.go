// Package asm implements the VM16 two-pass assembler: source loading with
// $include expansion, symbol/alias collection and instruction sizing
// (pass 1), operand encoding (pass 2), memory location and the listing/hex/
// H16 emitters.
package asm

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Assemble runs the full pipeline against sourcePath, writing progress lines
// to out. It does not write any output files; callers that want the
// listing/hexdump/H16 side effects of the reference tool should call
// WriteOutputs with the returned tokens and symbol table.
func Assemble(sourcePath string, out io.Writer) ([]Token, *SymbolTable, error) {
	fmt.Fprintf(out, " - read %s...\n", sourcePath)
	lines, ft, err := Load(sourcePath, out)
	if err != nil {
		return nil, nil, err
	}

	p1 := newPass1(ft)
	tokens, err := p1.Run(lines)
	if err != nil {
		return nil, nil, err
	}

	p2 := newPass2(ft, p1.syms, p1.aliases)
	tokens, err = p2.Run(tokens)
	if err != nil {
		return nil, nil, err
	}

	return tokens, p1.syms, nil
}

// WriteOutputs writes the .lst, .txt and .h16 files derived from tokens,
// named after sourcePath with its extension replaced, and prints the
// progress/summary lines the reference tool prints: one " - write ..." line
// per file, the sorted global symbol table, the code start address and the
// total word count.
func WriteOutputs(sourcePath string, tokens []Token, syms *SymbolTable, out io.Writer) error {
	base := strings.TrimSuffix(sourcePath, filepath.Ext(sourcePath))

	img := Locate(tokens, out)

	lstPath := base + ".lst"
	fmt.Fprintf(out, " - write %s...\n", lstPath)
	header := fmt.Sprintf("VM16 ASSEMBLER       File: %-18s", filepath.Base(sourcePath))
	if err := os.WriteFile(lstPath, []byte(Listing(header, tokens)), 0666); err != nil {
		return errors.Wrap(err, "write listing failed")
	}

	txtPath := base + ".txt"
	fmt.Fprintf(out, " - write %s...\n", txtPath)
	if err := img.WriteHexDump(txtPath); err != nil {
		return errors.Wrap(err, "write hex dump failed")
	}

	h16Path := base + ".h16"
	fmt.Fprintf(out, " - write %s...\n", h16Path)
	if err := img.WriteH16(h16Path); err != nil {
		return errors.Wrap(err, "write H16 failed")
	}

	fmt.Fprintf(out, "\nSymbol table:\n")
	for _, sym := range syms.Globals() {
		fmt.Fprintf(out, " - %-16s = %04X\n", sym.Name, sym.Addr)
	}
	fmt.Fprintln(out)

	fmt.Fprintf(out, "Code start address: $%04X\n", img.Start)
	fmt.Fprintf(out, "Code size: $%04X/%d words\n\n", len(img.Cells), len(img.Cells))
	return nil
}
