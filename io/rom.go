package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	ROM_SIZE = 256 // Largest image that fits in memory.

	commentMarker = "#"
)

// Rom is an LS8 program image, and the .ls8 text format it is loaded from
// and stored to.
//
// The text format is one byte per line, written as exactly eight binary
// digits. Anything after a '#' is a comment, and lines that are empty once
// the comment is removed are skipped.
type Rom struct {
	Strict bool // If set, malformed lines are errors rather than skipped.

	Data     []byte   // Image bytes, loaded at address 0.
	LineNo   []int    // Source line of each byte in Data, if loaded from text.
	Comments []string // Comment stored after each byte in Data, if any.
}

// parseByte parses an eight digit binary literal.
func parseByte(word string) (value byte, err error) {
	if len(word) != 8 {
		err = ErrLineFormat
		return
	}

	for _, c := range word {
		value <<= 1
		switch c {
		case '0':
		case '1':
			value |= 1
		default:
			err = ErrLineFormat
			return
		}
	}

	return
}

// Load replaces the image with the .ls8 text read from input.
// On error the image is left empty.
func (rc *Rom) Load(input io.Reader) (err error) {
	rc.Data = nil
	rc.LineNo = nil
	rc.Comments = nil

	defer func() {
		if err != nil {
			rc.Data = nil
			rc.LineNo = nil
			rc.Comments = nil
		}
	}()

	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		text, comment, _ := strings.Cut(line, commentMarker)
		text = strings.TrimSpace(text)
		if len(text) == 0 {
			continue
		}

		var value byte
		value, err = parseByte(text)
		if err != nil {
			if !rc.Strict {
				err = nil
				continue
			}
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}

		if len(rc.Data) == ROM_SIZE {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: ErrRomSize}
			return
		}

		rc.Data = append(rc.Data, value)
		rc.LineNo = append(rc.LineNo, lineno)
		rc.Comments = append(rc.Comments, strings.TrimSpace(comment))
	}

	err = scanner.Err()
	if err != nil {
		err = errors.Join(ErrLoad, err)
		return
	}

	return
}

// Store writes the image as .ls8 text.
func (rc *Rom) Store(output io.Writer) (err error) {
	w := bufio.NewWriter(output)

	for n, value := range rc.Data {
		line := fmt.Sprintf("%08b", value)
		if n < len(rc.Comments) && len(rc.Comments[n]) != 0 {
			line += " " + commentMarker + " " + rc.Comments[n]
		}
		_, err = fmt.Fprintln(w, line)
		if err != nil {
			return
		}
	}

	err = w.Flush()

	return
}
