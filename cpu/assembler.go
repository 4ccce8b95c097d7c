// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Maximum depth of .equ to .equ substitution.
const equateDepth = 8

var (
	reCharacter  = regexp.MustCompile(`'\\?[^']'`)
	reExpression = regexp.MustCompile(`\$\([^\$]*\)`)
	reLabel      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Assembler is a single pass assembler for the LS8 system, with a final
// link pass for forward label references.
//
// Source is one statement per line:
//
//	[LABEL:] MNEMONIC [operand[, operand]]
//	.equ NAME VALUE
//	.db VALUE [VALUE...]
//	.org ADDRESS
//
// Comments start with ';' or '#'. Values may be numbers (0x, 0b, 0o
// prefixes accepted), character constants such as 'A', equates, labels,
// or $(...) expressions evaluated at assembly time.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	address int // Location counter.
}

// Predefine defines a new equate or redefines an existing equate, applied
// at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// equate resolves a word through the equate table.
func (asm *Assembler) equate(word string) string {
	for range equateDepth {
		value, ok := asm.Equate[word]
		if !ok {
			break
		}
		word = value
	}
	return word
}

// valueOf returns the value of a simple numeric word.
func (asm *Assembler) valueOf(word string) (value int64, err error) {
	if len(word) > 0 && word[0] == '\'' {
		// Character quotes should have been expanded into
		// values in parseLine()
		err = ErrParseCharacter(strings.Trim(word, "'"))
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	return
}

// byteOf checks a value fits in a byte, accepting signed values.
func byteOf(value int64) (b byte, err error) {
	if value < -128 || value > 255 {
		err = ErrValueRange
		return
	}

	b = byte(value)
	return
}

// register parses a register operand.
func (asm *Assembler) register(word string) (reg byte, err error) {
	word = strings.ToUpper(asm.equate(word))
	if len(word) != 2 || word[0] != 'R' || word[1] < '0' || word[1] >= '0'+REGISTER_COUNT {
		err = ErrRegisterInvalid
		return
	}

	reg = word[1] - '0'
	return
}

// immediate parses a byte value. Unknown labels are returned for linking.
func (asm *Assembler) immediate(word string) (value byte, link string, err error) {
	word = asm.equate(word)

	if address, ok := asm.Label[word]; ok {
		value, err = byteOf(int64(address))
		return
	}

	v64, err := asm.valueOf(word)
	if err != nil {
		if reLabel.MatchString(word) {
			link = word
			err = nil
		}
		return
	}

	value, err = byteOf(v64)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key := range asm.Equate {
		var v64 int64
		v64, err = asm.valueOf(asm.equate(key))
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(address)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine splits a single line into words, after expanding character
// constants and expressions, and removing comments.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Remove comments
	if n := strings.IndexAny(line, ";#"); n >= 0 {
		line = line[:n]
	}

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})

	return
}

// emit appends an opcode at the current location.
func (asm *Assembler) emit(lineno int, words []string, codes []byte, links []Link) {
	op := Opcode{
		LineNo:  lineno,
		Address: asm.address,
		Words:   words,
		Codes:   codes,
		Links:   links,
	}

	if asm.Verbose {
		log.Printf("asm: %d %02x: %v % x", lineno, asm.address, strings.Join(words, " "), codes)
	}

	asm.Opcode = append(asm.Opcode, op)
	asm.address += len(codes)
}

// parseWords assembles a single line of words.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	// LABEL:
	if label, ok := strings.CutSuffix(words[0], ":"); ok {
		if !reLabel.MatchString(label) {
			err = ErrLabelSyntax
			return
		}
		_, dup := asm.Label[label]
		if dup {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.address
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	switch strings.ToLower(words[0]) {
	case ".equ":
		if len(words) != 3 || !reLabel.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, dup := asm.Equate[words[1]]
		if dup {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	case ".org":
		if len(words) != 2 {
			err = ErrOpcodeValueMissing
			if len(words) > 2 {
				err = ErrOpcodeExtraArgs
			}
			return
		}
		var v64 int64
		v64, err = asm.valueOf(asm.equate(words[1]))
		if err != nil {
			return
		}
		if v64 < int64(asm.address) {
			err = ErrOrgBackwards
			return
		}
		if v64 > MEMORY_SIZE {
			err = ErrProgramSize
			return
		}
		asm.address = int(v64)
		return
	case ".db":
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		var codes []byte
		var links []Link
		for n, word := range words[1:] {
			var value byte
			var link string
			value, link, err = asm.immediate(word)
			if err != nil {
				return
			}
			if len(link) != 0 {
				links = append(links, Link{Index: n, Label: link})
			}
			codes = append(codes, value)
		}
		asm.emit(lineno, words, codes, links)
		return
	}

	inst, ok := LookupInstruction(words[0])
	if !ok {
		err = ErrOpcodeInvalid
		return
	}

	args := words[1:]
	if len(args) > inst.Operands() {
		err = ErrOpcodeExtraArgs
		return
	}
	if len(args) < inst.Operands() {
		err = ErrOpcodeValueMissing
		return
	}

	codes := make([]byte, inst.Size())
	codes[0] = inst.Word()
	var links []Link
	for n, arg := range args {
		var value byte
		switch inst.info().operands[n] {
		case operandRegister:
			value, err = asm.register(arg)
		case operandImmediate:
			var link string
			value, link, err = asm.immediate(arg)
			if len(link) != 0 {
				links = append(links, Link{Index: 1 + n, Label: link})
			}
		}
		if err != nil {
			return
		}
		codes[1+n] = value
	}

	asm.emit(lineno, words, codes, links)

	return
}

// link resolves forward label references.
func (asm *Assembler) link() (err error) {
	for n := range asm.Opcode {
		op := &asm.Opcode[n]
		for _, link := range op.Links {
			address, ok := asm.Label[link.Label]
			if !ok {
				return ErrSyntax{LineNo: op.LineNo, Line: strings.Join(op.Words, " "), Err: ErrLabelMissing(link.Label)}
			}
			op.Codes[link.Index], err = byteOf(int64(address))
			if err != nil {
				return ErrSyntax{LineNo: op.LineNo, Line: strings.Join(op.Words, " "), Err: err}
			}
		}
	}

	return
}

// Parse assembles source text into a program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	asm.Opcode = nil
	asm.address = 0
	asm.Label = map[string]int{}
	asm.Equate = maps.Clone(sysEquate)
	for key, value := range asm.predefine {
		asm.Equate[key] = value
	}

	scanner := bufio.NewScanner(input)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := scanner.Text()

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err == nil {
			err = asm.parseWords(words, lineno)
		}
		if err == nil && asm.address > MEMORY_SIZE {
			err = ErrProgramSize
		}
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	err = asm.link()
	if err != nil {
		return
	}

	prog = &Program{Opcodes: asm.Opcode}

	return
}
