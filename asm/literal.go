package asm

import (
	"strconv"
	"strings"

	"github.com/joe7575/vm16"
)

// ParseValue parses a signed or unsigned integer literal in one of four
// bases: a '$' prefix or a '0x' prefix means hex, a leading '0' (but not
// '0x') means octal, anything else is decimal. Negative values wrap modulo
// 0x10000.
func ParseValue(s string) (vm16.Word, error) {
	n, err := parseValueSigned(s)
	if err != nil {
		return 0, err
	}
	return vm16.Word(uint16(n)), nil
}

func parseValueSigned(s string) (int64, error) {
	switch {
	case strings.HasPrefix(s, "$"):
		return strconv.ParseInt(s[1:], 16, 64)
	case strings.HasPrefix(s, "0x"):
		return strconv.ParseInt(s[2:], 16, 64)
	case strings.HasPrefix(s, "0") && len(s) > 1:
		return strconv.ParseInt(s, 8, 64)
	default:
		return strconv.ParseInt(s, 10, 64)
	}
}

// unquote strips a pair of surrounding double quotes and expands the \0 and
// \n escapes used by VM16 string literals.
func unquote(s string) (string, bool) {
	s = strings.ReplaceAll(s, `\0`, "\x00")
	s = strings.ReplaceAll(s, `\n`, "\n")
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1], true
	}
	return "", false
}

// parseWordText parses a .text line: the quoted string becomes one word per
// character (low byte only).
func parseWordText(s string) ([]vm16.Word, bool) {
	body, ok := unquote(s)
	if !ok {
		return nil, false
	}
	out := make([]vm16.Word, 0, len(body))
	for _, c := range []byte(body) {
		out = append(out, vm16.Word(c))
	}
	return out, true
}

// parseByteText parses a .btext line: characters are packed two per word,
// low byte first, high byte second. An odd trailing character is padded
// with a space (0x20) in the missing high byte.
func parseByteText(s string) ([]vm16.Word, bool) {
	body, ok := unquote(s)
	if !ok {
		return nil, false
	}
	b := []byte(body)
	out := make([]vm16.Word, 0, (len(b)+1)/2)
	for i := 0; i < len(b); i += 2 {
		lo := b[i]
		hi := byte(' ')
		if i+1 < len(b) {
			hi = b[i+1]
		}
		out = append(out, vm16.Word(lo)|vm16.Word(hi)<<8)
	}
	return out, true
}
