package asm

import "testing"

func TestSymbolTableGlobalDuplicate(t *testing.T) {
	st := NewSymbolTable()
	if err := st.AddLabel("START", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := st.AddLabel("START", 4); err == nil {
		t.Fatal("expected duplicate-label error")
	}
}

func TestSymbolTableLocalEpochScoping(t *testing.T) {
	st := NewSymbolTable()
	if err := st.AddLabel("A", 0); err != nil {
		t.Fatal(err)
	}
	epoch1 := st.Epoch()
	if err := st.AddLabel("loop", 0); err != nil {
		t.Fatal(err)
	}
	if err := st.AddLabel("B", 2); err != nil {
		t.Fatal(err)
	}
	epoch2 := st.Epoch()
	if epoch1 == epoch2 {
		t.Fatal("expected a new epoch after the second global label")
	}
	if err := st.AddLabel("loop", 2); err != nil {
		t.Fatalf("same-named local label in a new epoch must not collide: %v", err)
	}

	addr, ok := st.Resolve("loop", epoch1)
	if !ok || addr != 0 {
		t.Errorf("Resolve(loop, epoch1) = %v, %v; want 0, true", addr, ok)
	}
	addr, ok = st.Resolve("loop", epoch2)
	if !ok || addr != 2 {
		t.Errorf("Resolve(loop, epoch2) = %v, %v; want 2, true", addr, ok)
	}
}

func TestSymbolTableGlobalsSortedByAddress(t *testing.T) {
	st := NewSymbolTable()
	st.AddLabel("ZEBRA", 10)
	st.AddLabel("APPLE", 2)
	st.AddLabel("loop", 2) // local, must not appear in Globals
	got := st.Globals()
	if len(got) != 2 {
		t.Fatalf("got %d globals, want 2: %v", len(got), got)
	}
	if got[0].Name != "APPLE" || got[1].Name != "ZEBRA" {
		t.Errorf("globals not sorted by address: %v", got)
	}
}

func TestAliasExpand(t *testing.T) {
	at := NewAliasTable()
	at.Set("COUNTER", "42")
	if got := at.Expand("COUNTER"); got != "42" {
		t.Errorf("Expand(COUNTER) = %q, want 42", got)
	}
	if got := at.Expand("#COUNTER"); got != "#42" {
		t.Errorf("Expand(#COUNTER) = %q, want #42", got)
	}
	if got := at.Expand("UNSET"); got != "UNSET" {
		t.Errorf("Expand(UNSET) = %q, want UNSET unchanged", got)
	}
}
