package domain

import (
	"bufio"
	"context"
	"errors"

	"elmscope.dev/pkg/elmscope/internal/adapter"
	m "elmscope.dev/pkg/elmscope/internal/model"
)

// Checker reconciles candidate test names against a module's declared export
// surface.
type Checker interface {
	// FilterExposing reads the module header at path and returns the subset
	// of tests that the module actually exposes. If any candidate is not
	// exposed it returns model.UnexposedTests naming the shortfall; scan
	// failures surface as the other model problem types. moduleName is used
	// only for error labeling.
	FilterExposing(ctx context.Context, path m.Path, tests m.NameSet, moduleName string) (m.NameSet, error)
}

// checker is stateless apart from the injected filesystem adapter, so a
// single instance may verify many modules concurrently.
type checker struct {
	fs adapter.SourceFSAdapter
}

// NewChecker creates a Checker backed by the provided filesystem adapter.
func NewChecker(fs adapter.SourceFSAdapter) Checker {
	return &checker{fs: fs}
}

func (c *checker) FilterExposing(ctx context.Context, path m.Path, tests m.NameSet, moduleName string) (m.NameSet, error) {
	exposed, err := c.readExposing(ctx, path)
	if err != nil {
		return nil, err
	}

	accepted := exposed.Filter(tests)

	if accepted.Len() < tests.Len() {
		return nil, m.UnexposedTests{
			Module:  moduleName,
			Missing: tests.Difference(accepted),
		}
	}

	return accepted, nil
}

// readExposing streams the file one line at a time, stripping comments with
// the in-comment flag threaded across line boundaries, and feeds the cleaned
// lines to the header scanner until it terminates.
func (c *checker) readExposing(ctx context.Context, path m.Path) (m.ExposureSet, error) {
	if err := ctx.Err(); err != nil {
		return m.ExposureSet{}, err
	}

	reader, err := c.fs.Open(path)
	if err != nil {
		return m.ExposureSet{}, m.OpenFileError{Path: path, Err: err}
	}

	defer func() {
		_ = reader.Close()
	}()

	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var header headerScanner

	inComment := false

	for scanner.Scan() {
		var cleaned string
		cleaned, inComment = StripComments(scanner.Text(), inComment)

		set, done, err := header.Feed(cleaned)
		if errors.Is(err, errNoModuleDeclaration) {
			return m.ExposureSet{}, m.MissingModuleDeclaration{Path: path}
		}

		if err != nil {
			return m.ExposureSet{}, err
		}

		if done {
			return set, nil
		}
	}

	if err := scanner.Err(); err != nil {
		return m.ExposureSet{}, m.ReadFileError{Path: path, Err: err}
	}

	return m.ExposureSet{}, m.ParseError{Path: path}
}
