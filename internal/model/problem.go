package model

import (
	"fmt"
	"strings"
)

// The problem taxonomy: every failure while verifying one module is returned
// as one of these typed errors. Nothing is logged or retried at this level;
// the caller decides how to aggregate per-module outcomes.

// UnexposedTests reports candidate tests that exist in source but are missing
// from the module's export surface. It is a user-actionable warning, not
// fatal to the batch.
type UnexposedTests struct {
	Module  string
	Missing NameSet
}

func (p UnexposedTests) Error() string {
	return fmt.Sprintf("module %s does not expose: %s", p.Module, strings.Join(p.Missing.Sorted(), ", "))
}

// MissingModuleDeclaration means the first real content of the file was not a
// module declaration line.
type MissingModuleDeclaration struct {
	Path Path
}

func (p MissingModuleDeclaration) Error() string {
	return fmt.Sprintf("%s: no module declaration before other content", p.Path)
}

// OpenFileError wraps a failure to open the module source for reading.
type OpenFileError struct {
	Path Path
	Err  error
}

func (p OpenFileError) Error() string {
	return fmt.Sprintf("%s: open for reading exports: %v", p.Path, p.Err)
}

func (p OpenFileError) Unwrap() error {
	return p.Err
}

// ReadFileError wraps an I/O failure that occurred mid-scan.
type ReadFileError struct {
	Path Path
	Err  error
}

func (p ReadFileError) Error() string {
	return fmt.Sprintf("%s: reading exports: %v", p.Path, p.Err)
}

func (p ReadFileError) Unwrap() error {
	return p.Err
}

// ParseError means the module header never completed before end of input.
type ParseError struct {
	Path Path
}

func (p ParseError) Error() string {
	return fmt.Sprintf("%s: malformed module header", p.Path)
}
