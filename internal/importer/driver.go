// Package importer converts directories of machine-IR dumps paired with
// measurement side files into dataset examples. The driver is fault-isolating
// at file and line granularity: one bad file or line is lost, the run never
// aborts for data-quality reasons.
package importer

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"mirdata/internal/bb"
	"mirdata/internal/canon"
	"mirdata/internal/mir"
	"mirdata/internal/trace"
)

const (
	// ModuleSuffix marks module dump files in the input directory.
	ModuleSuffix = ".mir"
	// PerfSuffix replaces ModuleSuffix to locate the paired measurement file.
	PerfSuffix = ".ll.perf"

	// progressEvery controls how often cumulative counters are traced.
	progressEvery = 1000
)

// Loader parses one module file. The textual loader is the default; tests
// substitute their own.
type Loader interface {
	Load(path string) (*mir.Module, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*mir.Module, error)

// Load calls f.
func (f LoaderFunc) Load(path string) (*mir.Module, error) { return f(path) }

// Sink receives completed examples in processing order.
type Sink interface {
	Append(ex bb.Example) error
}

// Request carries everything one import run needs.
type Request struct {
	InputDir      string
	Line          LineOptions
	Loader        Loader
	Canonicalizer canon.Canonicalizer
	Sink          Sink
	Progress      ProgressSink // optional
}

// Result is the outcome of a run.
type Result struct {
	Counters Counters
}

// ListModuleFiles returns the module dump file names in dir, in
// directory-listing order. Used both by the driver and by the progress UI.
func ListModuleFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read input directory")
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ModuleSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Run drives the import over every module file in the input directory.
//
// Per-item failures (unparsable module, missing measurement file, bad line)
// are converted to counter increments and trace entries; the returned error is
// reserved for fatal conditions: invalid configuration, unreadable input
// directory, sink write failure, or context cancellation.
func Run(ctx context.Context, req *Request) (Result, error) {
	var res Result
	if req == nil {
		return res, errors.New("missing import request")
	}
	if req.Loader == nil || req.Canonicalizer == nil || req.Sink == nil {
		return res, errors.New("import request missing loader, canonicalizer or sink")
	}
	if err := req.Line.Validate(); err != nil {
		return res, err
	}

	tracer := trace.FromContext(ctx)
	run := trace.Begin(tracer, trace.ScopeDriver, "import:"+req.InputDir)
	defer func() {
		run.End(res.Counters.String())
	}()

	names, err := ListModuleFiles(req.InputDir)
	if err != nil {
		return res, err
	}

	seen := 0
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if seen%progressEvery == 0 {
			trace.Point(tracer, trace.ScopeDriver, "progress", res.Counters.String())
		}
		seen++
		if err := importFile(ctx, req, name, &res.Counters); err != nil {
			return res, err
		}
	}
	return res, nil
}

// importFile processes one module file and its paired measurement file.
// The returned error is fatal (sink failure); per-file failures are recorded
// in counters and swallowed.
func importFile(ctx context.Context, req *Request, name string, counters *Counters) error {
	tracer := trace.FromContext(ctx)
	path := filepath.Join(req.InputDir, name)

	emit(req.Progress, name, StageLoad, StatusWorking, nil)
	mod, err := req.Loader.Load(path)
	if err != nil {
		counters.FilesSkipped++
		trace.Point(tracer, trace.ScopeFile, "skip:"+name, err.Error())
		emit(req.Progress, name, StageLoad, StatusError, err)
		return nil
	}

	perfPath := strings.TrimSuffix(path, ModuleSuffix) + PerfSuffix
	pf, err := os.Open(perfPath)
	if err != nil {
		counters.FilesSkipped++
		trace.Point(tracer, trace.ScopeFile, "skip:"+name, err.Error())
		emit(req.Progress, name, StageLoad, StatusError, err)
		return nil
	}
	defer func() {
		_ = pf.Close()
	}()

	counters.FilesProcessed++
	emit(req.Progress, name, StageImport, StatusWorking, nil)
	span := trace.Begin(tracer, trace.ScopeFile, "import:"+name)

	sc := bufio.NewScanner(pf)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if counters.BlocksProcessed%progressEvery == 0 {
			trace.Point(tracer, trace.ScopeDriver, "progress", counters.String())
		}
		counters.BlocksProcessed++

		ex, err := ParseLine(line, req.Line, mod, req.Canonicalizer)
		if err != nil {
			counters.BlocksSkipped++
			trace.Point(tracer, trace.ScopeLine, "skip-line", err.Error())
			continue
		}
		if err := req.Sink.Append(ex); err != nil {
			span.End("sink failure")
			emit(req.Progress, name, StageImport, StatusError, err)
			return errors.Wrap(err, "failed to write record")
		}
	}
	if err := sc.Err(); err != nil {
		// measurement file became unreadable mid-stream; records already
		// written stay valid, the file is counted as skipped
		counters.FilesSkipped++
		trace.Point(tracer, trace.ScopeFile, "skip:"+name, err.Error())
		span.End("read failure")
		emit(req.Progress, name, StageImport, StatusError, err)
		return nil
	}

	span.End(fmt.Sprintf("blocks=%d", counters.BlocksProcessed))
	emit(req.Progress, name, StageImport, StatusDone, nil)
	return nil
}
