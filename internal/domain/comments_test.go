package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripComments(t *testing.T) {
	tests := []struct {
		name          string
		line          string
		inComment     bool
		wantLine      string
		wantInComment bool
	}{
		{
			name:     "no markers is identity",
			line:     "module Foo exposing (bar)",
			wantLine: "module Foo exposing (bar)",
		},
		{
			name:     "line comment truncates rest of line",
			line:     "x = 1 -- the answer",
			wantLine: "x = 1 ",
		},
		{
			name:     "line comment at start empties line",
			line:     "-- all comment",
			wantLine: "",
		},
		{
			name:     "block comment within one line is deleted",
			line:     "a {- hidden -} b",
			wantLine: "a  b",
		},
		{
			name:     "multiple block comments on one line",
			line:     "a {- one -} b {- two -} c",
			wantLine: "a  b  c",
		},
		{
			name:     "empty block comment",
			line:     "a {--} b",
			wantLine: "a  b",
		},
		{
			name:          "unclosed open truncates and sets flag",
			line:          "a {- trailing",
			wantLine:      "a ",
			wantInComment: true,
		},
		{
			name:      "whole line inside comment becomes empty",
			line:      "all of this is comment",
			inComment: true,
			wantLine:  "",

			wantInComment: true,
		},
		{
			name:      "close marker ends comment and keeps tail",
			line:      "comment tail -} code",
			inComment: true,
			wantLine:  " code",
		},
		{
			name:     "stray close outside comment is untouched",
			line:     "a -} b",
			wantLine: "a -} b",
		},
		{
			name:      "line comment inside open block comment does not truncate",
			line:      "-- still a block comment -} code",
			inComment: true,
			wantLine:  " code",
		},
		{
			name:     "line marker inside block comment belongs to the block",
			line:     "{- comment -- not a line comment -}",
			wantLine: "",
		},
		{
			name:     "line comment before block open wins",
			line:     "x --{- not an open",
			wantLine: "x ",
		},
		{
			name:          "close then new open on one line",
			line:          "end -} code {- again",
			inComment:     true,
			wantLine:      " code ",
			wantInComment: true,
		},
		{
			name:     "code after deleted block then line comment",
			line:     "a {- b -} c -- d",
			wantLine: "a  c ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotLine, gotInComment := StripComments(tt.line, tt.inComment)
			assert.Equal(t, tt.wantLine, gotLine, "cleaned line")
			assert.Equal(t, tt.wantInComment, gotInComment, "in-comment flag")
		})
	}
}

func TestStripComments_FlagCarriesAcrossLines(t *testing.T) {
	lines := []string{
		"module Foo {- starts here",
		"still inside",
		"ends here -} exposing (..)",
	}

	var cleaned []string

	inComment := false

	for _, line := range lines {
		var out string
		out, inComment = StripComments(line, inComment)
		cleaned = append(cleaned, out)
	}

	assert.False(t, inComment)
	assert.Equal(t, []string{"module Foo ", "", " exposing (..)"}, cleaned)
}
