package manifest

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"
)

const (
	// maxNameLen is the longest attribute name the JAR format allows.
	maxNameLen = 70

	// maxLineLen bounds a single physical line.
	maxLineLen = 64 << 10
)

// header is one logical "Name: Value" line after continuation folding.
type header struct {
	line  int
	name  string
	value string
}

// Parse reads manifest text from r.
//
// Malformed input yields an error wrapping [ErrMalformed], usually a
// [*SyntaxError]. Read failures from r are returned unchanged.
func Parse(r io.Reader) (*Manifest, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 512), maxLineLen)
	sc.Split(scanLines)

	m := &Manifest{}
	var (
		pending  []header
		mainDone bool
		lineNo   int
	)

	flush := func() error {
		if !mainDone {
			mainDone = true
			for _, h := range pending {
				m.Main.set(h.name, h.value)
			}
			pending = pending[:0]
			return nil
		}
		if len(pending) == 0 {
			return nil
		}
		first := pending[0]
		if !strings.EqualFold(first.name, sectionName) {
			return &SyntaxError{Line: first.line, Msg: "section does not start with a Name header"}
		}
		attrs := m.section(first.value)
		for _, h := range pending[1:] {
			attrs.set(h.name, h.value)
		}
		pending = pending[:0]
		return nil
	}

	for sc.Scan() {
		lineNo++
		line := sc.Text()
		switch {
		case line == "":
			if err := flush(); err != nil {
				return nil, err
			}
		case line[0] == ' ':
			if len(pending) == 0 {
				return nil, &SyntaxError{Line: lineNo, Msg: "continuation line without a header"}
			}
			pending[len(pending)-1].value += line[1:]
		default:
			h, err := parseHeader(line, lineNo)
			if err != nil {
				return nil, err
			}
			pending = append(pending, h)
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return nil, &SyntaxError{Line: lineNo + 1, Msg: "line too long"}
		}
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return m, nil
}

func parseHeader(line string, lineNo int) (header, error) {
	name, value, ok := strings.Cut(line, ": ")
	if !ok {
		return header{}, &SyntaxError{Line: lineNo, Msg: "invalid header field"}
	}
	if !validName(name) {
		return header{}, &SyntaxError{Line: lineNo, Msg: "invalid attribute name " + strconv.Quote(name)}
	}
	return header{line: lineNo, name: name, value: value}, nil
}

func validName(name string) bool {
	if name == "" || len(name) > maxNameLen {
		return false
	}
	for i := range len(name) {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// scanLines splits on LF, CRLF or a lone CR.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
