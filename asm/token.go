package asm

import "github.com/joe7575/vm16"

// Kind classifies what a Token contributes to the assembled image.
type Kind int

const (
	KindComment Kind = iota
	KindCode
	KindWordText
	KindByteText
	KindData
)

// Token is one source line, enriched across both passes.
type Token struct {
	FileRef     int    // index into the file table
	LineNo      int    // 1-based line number within that file; 0 for loader sentinel lines
	LineStr     string // raw source line, whitespace preserved
	Kind        Kind
	LabelPrefix int       // local-label epoch current at this token
	Address     vm16.Word // word address of this line's first word
	Size        int       // number of words this line produces

	// Words holds the textual mnemonic+operands of a Code token, already
	// comma/tab-normalised and with the jump-target '#' correction applied.
	Words []string

	// Literals holds the already-resolved word values of a Data/WordText/
	// ByteText token, computed during pass 1 (data and text never depend on
	// the symbol table).
	Literals []vm16.Word

	// Code holds the final 1-3 encoded words, filled in by pass 2. For
	// Data/WordText/ByteText tokens this is just Literals copied over.
	Code []vm16.Word
}
