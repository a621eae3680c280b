// Package model defines the data types shared across elmscope layers.
package model

import "unicode"

// Path represents a file system path.
type Path string

// Module identifies a single Elm module under scan.
type Module struct {
	// Name is the dotted display name, e.g. "Tests.Login".
	Name string
	// Path is the location of the module's source file.
	Path Path
}

// ModuleTests pairs a module with the candidate test names discovered in it.
type ModuleTests struct {
	Module Module
	Tests  []string
}

// IsValueName reports whether name is a value-level identifier, i.e. one that
// begins with a lowercase letter. Type and constructor exports begin uppercase
// and are never test functions.
func IsValueName(name string) bool {
	for _, r := range name {
		return unicode.IsLower(r)
	}

	return false
}
