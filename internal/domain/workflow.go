package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"elmscope.dev/pkg/elmscope/internal/adapter"
	"elmscope.dev/pkg/elmscope/internal/controller"
	m "elmscope.dev/pkg/elmscope/internal/model"
	"elmscope.dev/pkg/elmscope/pkg"
)

// CheckArgs holds parameters for the check workflow.
type CheckArgs struct {
	Paths           []m.Path
	Exclude         []string
	Threads         int
	Strict          bool
	Reports         m.Path
	ShardIndex      int
	TotalShardCount int
}

// ListArgs holds parameters for the discovery-listing workflow.
type ListArgs struct {
	Paths   []m.Path
	Exclude []string
}

// ViewArgs holds parameters for viewing saved reports.
type ViewArgs struct {
	Reports m.Path
}

// MergeArgs holds parameters for merging sharded reports.
type MergeArgs struct {
	Reports m.Path
}

// Workflow wires discovery, verification, reporting and display into the
// operations the CLI exposes.
type Workflow interface {
	Check(ctx context.Context, args CheckArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
	Merge(ctx context.Context, args MergeArgs) error
}

type workflow struct {
	fs        adapter.SourceFSAdapter
	discovery adapter.TestDiscoveryAdapter
	store     adapter.ReportStore
	ui        controller.UI
	checker   Checker
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(
	fs adapter.SourceFSAdapter,
	discovery adapter.TestDiscoveryAdapter,
	store adapter.ReportStore,
	ui controller.UI,
	checker Checker,
) Workflow {
	return &workflow{
		fs:        fs,
		discovery: discovery,
		store:     store,
		ui:        ui,
		checker:   checker,
	}
}

// moduleFile pairs a discovered module source with the root it was found
// under; the root anchors module-name derivation.
type moduleFile struct {
	root m.Path
	path m.Path
}

// Check verifies the export surface of every discovered test module. Modules
// are independent, so they are scanned concurrently; one module failing never
// aborts the others.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	if err := w.ui.Start(ctx, controller.WithCheckMode()); err != nil {
		return err
	}
	defer w.ui.Close(ctx)

	files, err := w.collectModuleFiles(args.Paths, args.Exclude)
	if err != nil {
		return fmt.Errorf("collect modules: %w", err)
	}

	files = shardFiles(files, args.ShardIndex, args.TotalShardCount)

	slog.Info("checking modules", "count", len(files), "shard", args.ShardIndex, "shards", args.TotalShardCount)

	spill, err := pkg.NewFileSpill[m.CheckReport]()
	if err != nil {
		return fmt.Errorf("create report buffer: %w", err)
	}

	defer func() {
		_ = spill.Close()
	}()

	threads := args.Threads
	if threads < 1 {
		threads = 1
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for _, file := range files {
		group.Go(func() error {
			report := w.checkModule(groupCtx, file)
			return spill.Append(report)
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("scan modules: %w", err)
	}

	reports, err := collectReports(spill)
	if err != nil {
		return fmt.Errorf("collect reports: %w", err)
	}

	summary, err := summaryFromReports(spill)
	if err != nil {
		return fmt.Errorf("summarize reports: %w", err)
	}

	if err := w.ui.DisplayReports(ctx, reports); err != nil {
		return err
	}

	if err := w.ui.DisplaySummary(ctx, summary); err != nil {
		return err
	}

	if args.Reports != "" {
		dir := reportsDirFor(w.fs, args)
		if err := w.store.SaveReports(dir, reports); err != nil {
			return err
		}

		slog.Info("saved reports", "dir", dir)
	}

	w.ui.Wait(ctx)

	return runOutcome(summary, args.Strict)
}

// checkModule produces the report for a single module. All failures are
// captured in the report rather than returned, so the batch keeps going.
func (w *workflow) checkModule(ctx context.Context, file moduleFile) m.CheckReport {
	report := m.CheckReport{Path: file.path}

	name, err := w.discovery.ModuleName(file.root, file.path)
	if err != nil {
		report.Status = m.StatusFailed
		report.Reason = err.Error()

		return report
	}

	report.Module = name

	tests, err := w.discovery.DiscoverTests(ctx, file.path)
	if err != nil {
		report.Status = m.StatusFailed
		report.Reason = err.Error()

		return report
	}

	accepted, err := w.checker.FilterExposing(ctx, file.path, tests, name)

	var unexposed m.UnexposedTests

	switch {
	case err == nil:
		report.Status = m.StatusPassed
		report.Accepted = accepted.Sorted()
	case errors.As(err, &unexposed):
		report.Status = m.StatusUnexposed
		report.Accepted = tests.Difference(unexposed.Missing).Sorted()
		report.Missing = unexposed.Missing.Sorted()
	default:
		report.Status = m.StatusFailed
		report.Reason = err.Error()
	}

	slog.Debug("checked module", "module", name, "path", file.path, "status", report.Status)

	return report
}

// List shows every discovered test module with its candidate test count,
// without verifying exposure.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	if err := w.ui.Start(ctx, controller.WithListMode()); err != nil {
		return err
	}
	defer w.ui.Close(ctx)

	files, err := w.collectModuleFiles(args.Paths, args.Exclude)
	if err != nil {
		return fmt.Errorf("collect modules: %w", err)
	}

	modules := make([]m.ModuleTests, 0, len(files))

	for _, file := range files {
		name, err := w.discovery.ModuleName(file.root, file.path)
		if err != nil {
			return err
		}

		tests, err := w.discovery.DiscoverTests(ctx, file.path)
		if err != nil {
			return err
		}

		modules = append(modules, m.ModuleTests{
			Module: m.Module{Name: name, Path: file.path},
			Tests:  tests.Sorted(),
		})
	}

	return w.ui.DisplayDiscovery(ctx, modules)
}

// View displays reports saved by a previous check run.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	if err := w.ui.Start(ctx, controller.WithCheckMode()); err != nil {
		return err
	}
	defer w.ui.Close(ctx)

	reports, err := w.store.LoadReports(args.Reports)
	if err != nil {
		return err
	}

	if err := w.ui.DisplayReports(ctx, reports); err != nil {
		return err
	}

	return w.ui.DisplaySummary(ctx, summarize(reports))
}

// Merge combines the reports of shard_* subdirectories into a single reports
// file at the root of the reports directory.
func (w *workflow) Merge(ctx context.Context, args MergeArgs) error {
	entries, err := w.fs.ReadDirNames(args.Reports)
	if err != nil {
		return fmt.Errorf("read reports directory: %w", err)
	}

	var merged []m.CheckReport

	shards := 0

	for _, entry := range entries {
		if !entry.IsDir || !strings.HasPrefix(entry.Name, "shard_") {
			continue
		}

		reports, err := w.store.LoadReports(w.fs.JoinPath(string(args.Reports), entry.Name))
		if err != nil {
			return fmt.Errorf("load shard %s: %w", entry.Name, err)
		}

		merged = append(merged, reports...)
		shards++
	}

	if shards == 0 {
		return fmt.Errorf("no shard report directories found in %s", args.Reports)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Module < merged[j].Module
	})

	if err := w.store.SaveReports(args.Reports, merged); err != nil {
		return err
	}

	slog.Info("merged shard reports", "shards", shards, "modules", len(merged))

	return w.ui.DisplaySummary(ctx, summarize(merged))
}

// collectModuleFiles walks the given roots for .elm sources, skipping
// elm-stuff and anything matching the exclude patterns.
func (w *workflow) collectModuleFiles(paths []m.Path, exclude []string) ([]moduleFile, error) {
	if len(paths) == 0 {
		paths = []m.Path{"."}
	}

	excludes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	var files []moduleFile

	for _, root := range paths {
		walkRoot, err := w.resolveRoot(root)
		if err != nil {
			return nil, err
		}

		err = w.fs.Walk(root, true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				name := filepath.Base(path)
				if name == "elm-stuff" || (strings.HasPrefix(name, ".") && path != string(root)) {
					return filepath.SkipDir
				}

				return nil
			}

			if filepath.Ext(path) != ".elm" || matchesAny(excludes, path) {
				return nil
			}

			files = append(files, moduleFile{root: walkRoot, path: m.Path(path)})

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].path < files[j].path
	})

	return files, nil
}

// resolveRoot anchors module-name derivation. The elm.json project root is
// the anchor whenever one is reachable from the scan path, so a module keeps
// the same name no matter which subpath the scan started from. Outside any
// project a directory anchors itself and a single file its directory.
func (w *workflow) resolveRoot(root m.Path) (m.Path, error) {
	info, err := w.fs.FileInfo(root)
	if err != nil {
		return "", fmt.Errorf("path %s: %w", root, err)
	}

	if projectRoot, err := w.fs.FindProjectRoot(root); err == nil {
		return projectRoot, nil
	}

	if info.IsDir() {
		return root, nil
	}

	return m.Path(filepath.Dir(string(root))), nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	excludes := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		excludes = append(excludes, re)
	}

	return excludes, nil
}

func matchesAny(excludes []*regexp.Regexp, path string) bool {
	for _, re := range excludes {
		if re.MatchString(path) {
			return true
		}
	}

	return false
}

// shardFiles keeps the slice of files belonging to the given shard. Files
// arrive sorted, so the partition is stable across shard processes.
func shardFiles(files []moduleFile, index, total int) []moduleFile {
	if total <= 1 {
		return files
	}

	shard := make([]moduleFile, 0, len(files)/total+1)

	for i, file := range files {
		if i%total == index {
			shard = append(shard, file)
		}
	}

	return shard
}

// reportsDirFor returns the directory a shard writes its reports to.
func reportsDirFor(fs adapter.SourceFSAdapter, args CheckArgs) m.Path {
	if args.TotalShardCount <= 1 {
		return args.Reports
	}

	return fs.JoinPath(string(args.Reports), fmt.Sprintf("shard_%d", args.ShardIndex))
}

// collectReports drains the spill into a slice sorted by module name.
func collectReports(spill pkg.FileSpill[m.CheckReport]) ([]m.CheckReport, error) {
	reports := make([]m.CheckReport, 0, spill.Len())

	err := spill.Range(func(_ uint64, report m.CheckReport) error {
		reports = append(reports, report)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Module < reports[j].Module
	})

	return reports, nil
}

// runOutcome decides the overall run result: scan failures always fail the
// run; unexposed tests fail it only in strict mode.
func runOutcome(summary m.RunSummary, strict bool) error {
	if summary.Failed > 0 {
		return fmt.Errorf("%d module(s) could not be verified", summary.Failed)
	}

	if strict && summary.Unexposed > 0 {
		return fmt.Errorf("%d module(s) have unexposed tests", summary.Unexposed)
	}

	return nil
}
