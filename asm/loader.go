package asm

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
)

var reInclude = regexp.MustCompile(`^\s*\$include\s+"(.+?)"`)

// RawLine is one line of source, tagged with where it came from.
type RawLine struct {
	FileRef int
	LineNo  int
	Text    string
}

// FileTable is the ordered list of every distinct file ever loaded,
// referenced by RawLine.FileRef / Token.FileRef.
type FileTable struct {
	paths []string
	index map[string]int
}

func newFileTable() *FileTable {
	return &FileTable{index: make(map[string]int)}
}

// ref returns the file-ref for path, registering it if new.
func (ft *FileTable) ref(path string) int {
	if i, ok := ft.index[path]; ok {
		return i
	}
	i := len(ft.paths)
	ft.paths = append(ft.paths, path)
	ft.index[path] = i
	return i
}

// Path returns the absolute path registered under file-ref ref.
func (ft *FileTable) Path(ref int) string {
	return ft.paths[ref]
}

// Load reads the root source file and recursively expands $include
// directives, returning a single linear token stream tagged with
// file-of-origin and line number. Each loaded file's block of lines is
// preceded by a blank sentinel line and a title sentinel comment line, for
// listing clarity; there is no closing sentinel.
//
// progress, if non-nil, receives a " - import <path>..." line for every
// $include encountered.
func Load(rootPath string, progress io.Writer) ([]RawLine, *FileTable, error) {
	ft := newFileTable()
	lines, err := loadFile(ft, rootPath, 0, progress)
	if err != nil {
		return nil, nil, err
	}
	return lines, ft, nil
}

func loadFile(ft *FileTable, path string, includeLine int, progress io.Writer) ([]RawLine, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "resolve path failed")
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, &Error{Kind: ErrFileNotFound, File: path, Line: includeLine, Msg: "file does not exist"}
	}
	defer f.Close()

	ref := ft.ref(abs)
	dir := filepath.Dir(abs)

	out := []RawLine{
		{FileRef: ref, LineNo: 0, Text: ""},
		{FileRef: ref, LineNo: 0, Text: ";################ File: " + abs + " ################"},
	}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if m := reInclude.FindStringSubmatch(line); m != nil {
			if progress != nil {
				fmt.Fprintf(progress, " - import %s...\n", m[1])
			}
			incPath := filepath.Join(dir, m[1])
			incLines, err := loadFile(ft, incPath, lineNo, progress)
			if err != nil {
				return nil, err
			}
			out = append(out, incLines...)
			continue
		}
		out = append(out, RawLine{FileRef: ref, LineNo: lineNo, Text: line})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read failed")
	}
	return out, nil
}
