package vm16

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Empty is the sentinel value for a memory cell that has never been
// written. It is not a valid 16-bit word value stored by the assembler.
const Empty int32 = -1

// Image is a sparse block of VM16 word memory, addressed from Start to
// Start+len(Cells). Cells holds Empty for locations nothing was ever
// assembled into.
type Image struct {
	Start Word
	Cells []int32
}

// NewImage allocates an Image covering [start, end) with every cell set to
// Empty.
func NewImage(start, end Word) *Image {
	size := int(end) - int(start)
	cells := make([]int32, size)
	for i := range cells {
		cells[i] = Empty
	}
	return &Image{Start: start, Cells: cells}
}

// Set stores value at the given absolute address. It reports whether the
// cell already held a value (a memory location conflict); the write still
// happens, overwriting the previous value, since conflicts are a warning,
// not a fatal error.
func (img *Image) Set(addr Word, value Word) (conflict bool) {
	idx := int(addr) - int(img.Start)
	conflict = img.Cells[idx] != Empty
	img.Cells[idx] = int32(value)
	return conflict
}

// HexDump renders every cell from Start to the end of the image as
// uppercase 4-digit hex words, space separated, with Empty cells rendered
// as 0000.
func (img *Image) HexDump() string {
	parts := make([]string, len(img.Cells))
	for i, v := range img.Cells {
		if v == Empty {
			v = 0
		}
		parts[i] = fmt.Sprintf("%04X", uint16(v))
	}
	return strings.Join(parts, " ")
}

// WriteHexDump writes the HexDump output to fileName.
func (img *Image) WriteHexDump(fileName string) error {
	return errors.Wrap(os.WriteFile(fileName, []byte(img.HexDump()), 0666), "write failed")
}

// h16RowSize is the number of cells examined per record-candidate row, per
// the H16 format (§4.7).
const h16RowSize = 8

// WriteH16 writes the image in the H16 record format: 8-word rows, split at
// runs of Empty cells so that every record holds only populated cells and
// never crosses a row boundary, terminated by the ":0000001" record.
func (img *Image) WriteH16(fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return errors.Wrap(err, "create failed")
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	mem := img.Cells
	for idx := 0; idx < len(mem); idx += h16RowSize {
		end := idx + h16RowSize
		if end > len(mem) {
			end = len(mem)
		}
		row := mem[idx:end]
		i1 := 0
		for i1 < len(row) {
			i1 = firstValid(row, i1)
			if i1 >= len(row) {
				break
			}
			i2 := firstInvalid(row, i1)
			if err := writeH16Record(w, row[i1:i2], img.Start+Word(idx+i1)); err != nil {
				return err
			}
			i1 = i2
		}
	}
	if _, err := w.WriteString(":0000001"); err != nil {
		return errors.Wrap(err, "write failed")
	}
	return errors.Wrap(w.Flush(), "flush failed")
}

func firstValid(row []int32, start int) int {
	for i := start; i < len(row); i++ {
		if row[i] != Empty {
			return i
		}
	}
	return len(row)
}

func firstInvalid(row []int32, start int) int {
	for i := start; i < len(row); i++ {
		if row[i] == Empty {
			return i
		}
	}
	return len(row)
}

func writeH16Record(w *bufio.Writer, words []int32, addr Word) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, ":%X%04X00", len(words), uint16(addr))
	for _, v := range words {
		fmt.Fprintf(&sb, "%04X", uint16(v))
	}
	sb.WriteByte('\n')
	_, err := w.WriteString(sb.String())
	return errors.Wrap(err, "write failed")
}

// LoadH16 reads an H16 record file and returns the resulting sparse Image.
// Populated addresses are taken from the records; any gap between the
// lowest and highest populated address is filled with Empty.
func LoadH16(fileName string) (*Image, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "open failed")
	}
	defer f.Close()

	cells := make(map[Word]Word)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line == ":0000001" {
			continue
		}
		if line[0] != ':' || len(line) < 8 {
			return nil, errors.Errorf("malformed H16 record %q", line)
		}
		n, err := strconv.ParseUint(line[1:2], 16, 8)
		if err != nil {
			return nil, errors.Wrap(err, "malformed H16 word count")
		}
		addr, err := strconv.ParseUint(line[2:6], 16, 16)
		if err != nil {
			return nil, errors.Wrap(err, "malformed H16 address")
		}
		payload := line[8:]
		if len(payload) != int(n)*4 {
			return nil, errors.Errorf("malformed H16 record %q: short payload", line)
		}
		for i := 0; i < int(n); i++ {
			v, err := strconv.ParseUint(payload[i*4:i*4+4], 16, 16)
			if err != nil {
				return nil, errors.Wrap(err, "malformed H16 payload word")
			}
			cells[Word(addr)+Word(i)] = Word(v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	if len(cells) == 0 {
		return &Image{}, nil
	}

	addrs := make([]Word, 0, len(cells))
	for a := range cells {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool { return addrs[i] < addrs[j] })
	start := addrs[0]
	end := addrs[len(addrs)-1] + 1
	img := NewImage(start, end)
	for a, v := range cells {
		img.Set(a, v)
	}
	return img, nil
}
