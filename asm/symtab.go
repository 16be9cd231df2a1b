package asm

import (
	"fmt"
	"sort"
	"strings"

	"github.com/joe7575/vm16"
)

// isGlobal reports whether name belongs to the global label namespace: it
// contains at least one upper-case character. Everything else (entirely
// lower-case, digits, underscores) is a local label, scoped to the epoch
// current at its definition site.
func isGlobal(name string) bool {
	return strings.ToLower(name) != name
}

// SymbolTable holds VM16's single label namespace, split by case into
// global labels (unique process-wide) and local labels (scoped to a
// "prefix epoch" that increments on every global label definition).
type SymbolTable struct {
	epoch   int
	symbols map[string]vm16.Word
}

// NewSymbolTable returns an empty symbol table, epoch 0.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]vm16.Word)}
}

// Epoch returns the epoch current right now. Pass 1 stamps this onto every
// token it emits (Token.LabelPrefix); pass 2 must reuse that frozen value
// rather than re-deriving it live, since pass 2 processes tokens, not label
// definitions, in order.
func (st *SymbolTable) Epoch() int { return st.epoch }

func localKey(epoch int, name string) string {
	return fmt.Sprintf("%d_%s", epoch, name)
}

// AddLabel records a label definition at addr. For a global label this
// bumps the epoch counter before storing, so that local labels defined
// after it belong to a new scope. It returns an error if the label (global,
// or local within its current epoch) was already defined.
func (st *SymbolTable) AddLabel(name string, addr vm16.Word) error {
	if isGlobal(name) {
		st.epoch++
		if _, ok := st.symbols[name]; ok {
			return fmt.Errorf("Label '%s' used twice", name)
		}
		st.symbols[name] = addr
		return nil
	}
	key := localKey(st.epoch, name)
	if _, ok := st.symbols[key]; ok {
		return fmt.Errorf("Label '%s' used twice", name)
	}
	st.symbols[key] = addr
	return nil
}

// Resolve looks up name. epoch is the frozen label-prefix of the token
// making the reference, used to scope a local label lookup to the right
// definition. A global reference also bumps the live epoch counter, purely
// to mirror definition ordering; it has no bearing on the result, since
// global symbols are keyed by their bare name.
func (st *SymbolTable) Resolve(name string, epoch int) (vm16.Word, bool) {
	if isGlobal(name) {
		st.epoch++
		addr, ok := st.symbols[name]
		return addr, ok
	}
	addr, ok := st.symbols[localKey(epoch, name)]
	return addr, ok
}

// SymbolEntry is one global label's name and resolved address.
type SymbolEntry struct {
	Name string
	Addr vm16.Word
}

// Globals returns every global label, sorted by address. Local labels (keyed
// internally as "<epoch>_<name>") are never all-lowercase-free of a digit
// prefix the way a bare global name is, so the same isGlobal test that
// gates AddLabel/Resolve also separates them out here.
func (st *SymbolTable) Globals() []SymbolEntry {
	out := make([]SymbolEntry, 0, len(st.symbols))
	for k, v := range st.symbols {
		if isGlobal(k) {
			out = append(out, SymbolEntry{Name: k, Addr: v})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Addr < out[j].Addr })
	return out
}

// AliasTable is a string-to-string textual replacement table fed by `IDENT
// = VALUE` lines. Redefinition silently replaces; there is no scoping.
type AliasTable struct {
	aliases map[string]string
}

// NewAliasTable returns an empty alias table.
func NewAliasTable() *AliasTable {
	return &AliasTable{aliases: make(map[string]string)}
}

// Set records name as an alias for text.
func (at *AliasTable) Set(name, text string) { at.aliases[name] = text }

// RawExpand replaces s with its alias text if s has one, by exact name
// match only (no '#'-prefix handling). This is the substitution pass 1
// uses to size an operand, before pass 2's more careful Expand.
func (at *AliasTable) RawExpand(s string) string {
	if rep, ok := at.aliases[s]; ok {
		return rep
	}
	return s
}

// Expand replaces s with its alias text if s (or s with a leading '#'
// stripped) has one. If the original operand was prefixed with '#' the '#'
// is preserved on the replacement. Nested aliases are not re-expanded.
func (at *AliasTable) Expand(s string) string {
	if strings.HasPrefix(s, "#") {
		if rep, ok := at.aliases[s[1:]]; ok {
			return "#" + rep
		}
		return s
	}
	if rep, ok := at.aliases[s]; ok {
		return rep
	}
	return s
}
