package adapter

import (
	"bufio"
	"context"
	"path/filepath"
	"regexp"
	"strings"

	m "elmscope.dev/pkg/elmscope/internal/model"
)

// testAnnotation matches a top-level type annotation declaring a value of
// type Test, e.g. `loginSuite : Test`, `loginSuite : Test.Test` or
// `suites : List Test`. Anything indented is a local definition and never
// discoverable by a test runner.
var testAnnotation = regexp.MustCompile(`^([a-z][A-Za-z0-9_]*)\s*:\s*(?:List\s+)?(?:Test\.)?Test\s*$`)

// LineCleaner removes comment text from one raw source line, threading the
// open-block-comment state across calls. The domain's comment stripper has
// this shape; it is injected so this package does not depend on the domain
// layer.
type LineCleaner func(line string, inComment bool) (string, bool)

// TestDiscoveryAdapter finds candidate test names in Elm source so the domain
// layer can reconcile them against the module's export surface. The candidate
// set is a suspicion, not a verdict: discovery does not know whether a name
// is exposed.
type TestDiscoveryAdapter interface {
	// DiscoverTests returns the candidate test names declared at the top
	// level of the module at path.
	DiscoverTests(ctx context.Context, path m.Path) (m.NameSet, error)

	// ModuleName derives the dotted display name of the module at path,
	// relative to the scan root.
	ModuleName(root, path m.Path) (string, error)
}

// LocalTestDiscoveryAdapter scans module sources on disk.
type LocalTestDiscoveryAdapter struct {
	fs    SourceFSAdapter
	clean LineCleaner
}

// NewLocalTestDiscoveryAdapter constructs a LocalTestDiscoveryAdapter.
func NewLocalTestDiscoveryAdapter(fs SourceFSAdapter, clean LineCleaner) *LocalTestDiscoveryAdapter {
	return &LocalTestDiscoveryAdapter{fs: fs, clean: clean}
}

// DiscoverTests collects every top-level `name : Test` annotation in the
// file. Lines are comment-stripped before matching, so an annotation with a
// trailing `--` comment still counts and one buried in a block comment never
// does.
func (a *LocalTestDiscoveryAdapter) DiscoverTests(ctx context.Context, path m.Path) (m.NameSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := a.fs.Open(path)
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = reader.Close()
	}()

	tests := m.NewNameSet()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inComment := false

	for scanner.Scan() {
		var line string
		line, inComment = a.clean(scanner.Text(), inComment)

		match := testAnnotation.FindStringSubmatch(line)
		if match != nil {
			tests.Add(match[1])
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return tests, nil
}

// ModuleName converts the path relative to root into a dotted module name.
// A leading tests/ or src/ component is a source directory, not part of the
// module name.
func (a *LocalTestDiscoveryAdapter) ModuleName(root, path m.Path) (string, error) {
	rel, err := a.fs.RelPath(root, path)
	if err != nil {
		return "", err
	}

	trimmed := strings.TrimSuffix(filepath.ToSlash(string(rel)), ".elm")

	parts := strings.Split(trimmed, "/")
	if len(parts) > 1 && (parts[0] == "tests" || parts[0] == "src") {
		parts = parts[1:]
	}

	return strings.Join(parts, "."), nil
}
