// Package domain contains the core export-surface verification logic.
package domain

import "strings"

const (
	lineCommentMarker = "--"
	blockCommentOpen  = "{-"
	blockCommentClose = "-}"
)

// StripComments removes comment text from a single raw source line. inComment
// says whether a block comment opened on an earlier line is still unclosed;
// the returned flag carries that state to the next line.
//
// A `--` marker truncates the rest of the line, but only when the scanner is
// outside any block comment at that point: a `--` that appears after a `{-`
// on the same line belongs to the block comment and has no truncation effect.
// Block comments do not nest; the first `-}` always ends the comment no
// matter how many `{-` preceded it.
//
// Each call computes fresh substrings of the input. The original line is
// never modified.
func StripComments(line string, inComment bool) (string, bool) {
	for {
		if inComment {
			// Only a close marker matters while inside a block comment.
			end := strings.Index(line, blockCommentClose)
			if end < 0 {
				return "", true
			}

			line = line[end+len(blockCommentClose):]
			inComment = false

			continue
		}

		lineIdx := strings.Index(line, lineCommentMarker)
		openIdx := strings.Index(line, blockCommentOpen)

		// Line comment wins only when it precedes any block-comment open.
		if lineIdx >= 0 && (openIdx < 0 || lineIdx < openIdx) {
			return line[:lineIdx], false
		}

		if openIdx < 0 {
			// No markers left. A stray `-}` outside a comment stays as-is.
			return line, false
		}

		rest := line[openIdx+len(blockCommentOpen):]

		end := strings.Index(rest, blockCommentClose)
		if end < 0 {
			return line[:openIdx], true
		}

		// Delete the open marker through the close marker inclusive, then keep
		// scanning the remainder for further comments on the same line.
		line = line[:openIdx] + rest[end+len(blockCommentClose):]
	}
}
