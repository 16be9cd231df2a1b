package vm16

import (
	"os"
	"testing"
)

func TestImageHexDump(t *testing.T) {
	img := NewImage(0, 4)
	img.Set(0, 0x1234)
	img.Set(2, 0xABCD)
	want := "1234 0000 ABCD 0000"
	if got := img.HexDump(); got != want {
		t.Errorf("HexDump() = %q, want %q", got, want)
	}
}

func TestImageSetConflict(t *testing.T) {
	img := NewImage(0, 2)
	if conflict := img.Set(0, 1); conflict {
		t.Errorf("first Set reported a conflict")
	}
	if conflict := img.Set(0, 2); !conflict {
		t.Errorf("second Set at the same address did not report a conflict")
	}
}

// Sparse image with populated words at addresses 0, 1, 4, 5, 6 and
// sentinels at 2, 3: two records, terminated by ":0000001".
func TestImageWriteH16(t *testing.T) {
	img := NewImage(0, 7)
	img.Set(0, 0xAAAA)
	img.Set(1, 0xBBBB)
	img.Set(4, 0xCCCC)
	img.Set(5, 0xDDDD)
	img.Set(6, 0xEEEE)

	f, err := os.CreateTemp(t.TempDir(), "*.h16")
	if err != nil {
		t.Fatal(err)
	}
	name := f.Name()
	f.Close()

	if err := img.WriteH16(name); err != nil {
		t.Fatalf("WriteH16: %v", err)
	}
	got, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	want := ":2000000AAAABBBB\n:3000400CCCCDDDDEEEE\n:0000001"
	if string(got) != want {
		t.Errorf("WriteH16 =\n%s\nwant\n%s", got, want)
	}
}

func TestLoadH16RoundTrip(t *testing.T) {
	img := NewImage(0x0100, 0x0105)
	img.Set(0x0100, 1)
	img.Set(0x0101, 2)
	img.Set(0x0104, 3)

	name := t.TempDir() + "/out.h16"
	if err := img.WriteH16(name); err != nil {
		t.Fatal(err)
	}
	loaded, err := LoadH16(name)
	if err != nil {
		t.Fatalf("LoadH16: %v", err)
	}
	if loaded.Start != 0x0100 {
		t.Errorf("Start = %04X, want 0100", loaded.Start)
	}
	if got := loaded.HexDump(); got != img.HexDump() {
		t.Errorf("round-trip HexDump = %q, want %q", got, img.HexDump())
	}
}
