package domain

import (
	"errors"
	"strings"

	m "elmscope.dev/pkg/elmscope/internal/model"
)

// errNoModuleDeclaration is returned by the header scanner when the first
// real content of the input is not a module declaration. The checker wraps it
// with the file path.
var errNoModuleDeclaration = errors.New("no module declaration")

const (
	moduleKeyword   = "module"
	exposingKeyword = "exposing"
	wildcardToken   = ".."
)

// modulePrefixes are the accepted forms of a module declaration line.
var modulePrefixes = []string{
	"port " + moduleKeyword,
	"effect " + moduleKeyword,
	moduleKeyword,
}

type headerPhase int

const (
	phaseAwaitingModule headerPhase = iota
	phaseReadingModuleName
	phaseAwaitingOpenBracket
	phaseAccumulating
	phaseDone
)

// headerScanner consumes cleaned source lines and drives the module-header
// state machine until the exposing clause has been read completely.
type headerScanner struct {
	phase headerPhase
	depth int
	buf   strings.Builder
}

// Feed advances the scanner with one comment-stripped line. Once the header
// is complete it returns the exposure set with done=true; further input is
// ignored. Blank lines are skipped in every phase.
func (h *headerScanner) Feed(line string) (m.ExposureSet, bool, error) {
	if h.phase == phaseDone {
		return m.ExposureSet{}, true, nil
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return m.ExposureSet{}, false, nil
	}

	if h.phase == phaseAwaitingModule {
		rest, ok := moduleLineRemainder(line)
		if !ok {
			// Content before any module line means the file cannot declare an
			// export surface at all.
			return m.ExposureSet{}, false, errNoModuleDeclaration
		}

		h.phase = phaseReadingModuleName
		line = rest
	}

	if h.phase == phaseReadingModuleName {
		idx := strings.Index(line, exposingKeyword)
		if idx < 0 {
			// Still inside the dotted module name; it is skipped, not kept.
			return m.ExposureSet{}, false, nil
		}

		line = line[idx+len(exposingKeyword):]
		h.phase = phaseAwaitingOpenBracket
	}

	if h.phase == phaseAwaitingOpenBracket {
		idx := strings.IndexByte(line, '(')
		if idx < 0 {
			return m.ExposureSet{}, false, nil
		}

		h.depth = 1
		line = line[idx+1:]
		h.phase = phaseAccumulating
	}

	// phaseAccumulating: every parenthesis counts toward the depth, so nested
	// tuple or record annotations inside an export item cannot prematurely
	// close the clause. The terminating parenthesis is not accumulated.
	for _, r := range line {
		switch r {
		case '(':
			h.depth++
		case ')':
			h.depth--
			if h.depth == 0 {
				h.phase = phaseDone
				return h.finish(), true, nil
			}
		}

		h.buf.WriteRune(r)
	}

	return m.ExposureSet{}, false, nil
}

// moduleLineRemainder matches the accepted module-line prefixes and returns
// the text following the module keyword.
func moduleLineRemainder(line string) (string, bool) {
	for _, prefix := range modulePrefixes {
		if strings.HasPrefix(line, prefix) {
			return line[len(prefix):], true
		}
	}

	return "", false
}

// finish converts the accumulated clause body into an exposure set. Wildcard
// supersedes everything: once `..` is seen no enumeration is produced.
func (h *headerScanner) finish() m.ExposureSet {
	body := strings.TrimSpace(h.buf.String())
	if body == wildcardToken {
		return m.Wildcard()
	}

	names := m.NewNameSet()

	for _, piece := range strings.Split(body, ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" || !m.IsValueName(piece) {
			// Uppercase pieces are type or constructor exports, including the
			// `Type(..)` constructor-wildcard form; only value-level names
			// can be tests.
			continue
		}

		names.Add(piece)
	}

	return m.Enumerated(names)
}
