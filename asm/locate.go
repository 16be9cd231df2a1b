package asm

import (
	"fmt"
	"io"
	"sort"

	"github.com/joe7575/vm16"
)

// Locate lays the encoded words of every Code/WordText/ByteText token out
// into a sparse vm16.Image. Data tokens carry no placement: they size and
// encode like any other segment, but the image they produce is consumed
// only by a listing, never by memory layout.
//
// warn receives one line per overlapping write; pass nil to discard them.
func Locate(tokens []Token, warn io.Writer) *vm16.Image {
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Address < sorted[j].Address })

	var start, end vm16.Word
	found := false
	for _, t := range sorted {
		if t.Kind == KindComment {
			continue
		}
		if !found {
			start = t.Address
			found = true
		}
		if e := t.Address + vm16.Word(t.Size); e > end {
			end = e
		}
	}
	if !found {
		return vm16.NewImage(0, 0)
	}

	img := vm16.NewImage(start, end)
	for _, t := range sorted {
		switch t.Kind {
		case KindCode, KindWordText, KindByteText:
		default:
			continue
		}
		for i, v := range t.Code {
			addr := t.Address + vm16.Word(i)
			if conflict := img.Set(addr, v); conflict && warn != nil {
				fmt.Fprintf(warn, "Warning: Memory location conflict at $%04X\n", addr)
			}
		}
	}
	return img
}
