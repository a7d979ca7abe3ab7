package shader

import (
	"errors"
	"strconv"
	"strings"
)

// Marker separates the shared header, the compute stage and the fragment stage
// of a composed source file.
const Marker = '$'

const computeKeyword = "compute"

var (
	ErrNoComputeBlock   = errors.New("no compute block")
	ErrFragmentRequired = errors.New("fragment block required")
)

// Dialect selects how stage text is handed to the driver.
type Dialect int

const (
	// DialectNative is desktop GLSL compiled as written.
	DialectNative Dialect = iota
	// DialectWebGL2 is GLSL ES 3.00 translated to desktop GLSL before compiling.
	DialectWebGL2
)

// ComputeSizing is the dispatch sizing of a compute stage.
type ComputeSizing struct {
	ItemSize int
	NumItems int
}

// Bytes returns the storage buffer size backing the compute stage.
func (s ComputeSizing) Bytes() int {
	return s.ItemSize * s.NumItems
}

// StageBlock holds the stages split out of one source file. Every stage
// already carries the shared header.
type StageBlock struct {
	Fragment string
	Compute  string
	Sizing   ComputeSizing
	Dialect  Dialect
}

// HasCompute reports whether the block carries a compute stage.
func (b *StageBlock) HasCompute() bool {
	return b.Compute != ""
}

type splitState int

const (
	seekingMarker splitState = iota
	readingDirective
	readingComputeBody
	readingFragmentBody
	splitDone
)

// Split parses a composed source of the form
//
//	<header>
//	$compute[item_size,num_items]
//	<compute body>
//	$
//	<fragment body>
//
// Without a marker the whole text is a fragment stage.
func Split(src string) (*StageBlock, error) {
	var (
		block  StageBlock
		header string
		pos    int
	)
	state := seekingMarker
	for state != splitDone {
		switch state {
		case seekingMarker:
			i := strings.IndexByte(src, Marker)
			if i < 0 {
				block.Fragment = src
				return &block, nil
			}
			header = src[:i]
			pos = i + 1
			state = readingDirective

		case readingDirective:
			rest := strings.TrimLeft(src[pos:], " \t\r\n")
			if !strings.HasPrefix(rest, computeKeyword) {
				return nil, ErrNoComputeBlock
			}
			pos = len(src) - len(rest) + len(computeKeyword)
			eol := strings.IndexByte(src[pos:], '\n')
			if eol < 0 {
				return nil, ErrFragmentRequired
			}
			block.Sizing = parseDirective(src[pos : pos+eol])
			pos += eol + 1
			state = readingComputeBody

		case readingComputeBody:
			end := strings.IndexByte(src[pos:], Marker)
			if end < 0 {
				return nil, ErrFragmentRequired
			}
			block.Compute = header + src[pos:pos+end]
			pos += end + 1
			state = readingFragmentBody

		case readingFragmentBody:
			var body string
			if eol := strings.IndexByte(src[pos:], '\n'); eol >= 0 {
				body = src[pos+eol+1:]
			}
			if strings.TrimSpace(body) == "" {
				return nil, ErrFragmentRequired
			}
			block.Fragment = header + body
			state = splitDone
		}
	}
	return &block, nil
}

// parseDirective reads "[item_size,num_items]" from the remainder of the
// keyword line. Anything malformed yields zero sizing.
func parseDirective(line string) ComputeSizing {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "[") {
		return ComputeSizing{}
	}
	end := strings.IndexByte(line, ']')
	if end < 0 {
		return ComputeSizing{}
	}
	args := strings.Join(strings.Fields(line[1:end]), "")
	itemStr, numStr, ok := strings.Cut(args, ",")
	if !ok {
		return ComputeSizing{}
	}
	item, err1 := strconv.Atoi(itemStr)
	num, err2 := strconv.Atoi(numStr)
	if err1 != nil || err2 != nil || item < 0 || num < 0 {
		return ComputeSizing{}
	}
	return ComputeSizing{ItemSize: item, NumItems: num}
}
