// Command vm16asm assembles a single VM16 source file, producing a listing
// (.lst), a hex dump (.txt) and a sparse H16 image (.h16) alongside it.
package main

import (
	"fmt"
	"os"

	"github.com/joe7575/vm16/asm"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Syntax: vm16asm <asm-file>")
		os.Exit(1)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "\n%v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	fmt.Printf("VM16 ASSEMBLER\n\n")
	tokens, syms, err := asm.Assemble(path, os.Stdout)
	if err != nil {
		return err
	}
	return asm.WriteOutputs(path, tokens, syms, os.Stdout)
}
