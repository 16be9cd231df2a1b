package asm

import (
	"fmt"
	"strings"

	"github.com/joe7575/vm16"
)

// Listing renders tokens as a ".lst" file: one line per comment, and an
// address/code/source line per Code/Data/WordText/ByteText token.
//
// Unlike the reference implementation this also prints Data tokens (the
// same way Code tokens are printed): dropping them from the listing would
// make assembled constants invisible to anyone reading the output, even
// though (per the locater) they never occupy image memory.
func Listing(header string, tokens []Token) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")
	for _, t := range tokens {
		switch t.Kind {
		case KindComment:
			sb.WriteString(strings.TrimRight(t.LineStr, " \t\r"))
			sb.WriteByte('\n')
		case KindCode, KindData, KindWordText, KindByteText:
			writeCodeLine(&sb, t)
		}
	}
	return sb.String()
}

func writeCodeLine(sb *strings.Builder, t Token) {
	code := hexJoin(t.Code)
	src := strings.TrimRight(t.LineStr, " \t\r")
	fmt.Fprintf(sb, "%04X: %-18s %s\n", uint16(t.Address), code, src)
}

func hexJoin(words []vm16.Word) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%04X", uint16(w))
	}
	return strings.Join(parts, ", ")
}
