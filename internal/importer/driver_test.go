package importer_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mirdata/internal/bb"
	"mirdata/internal/importer"
	"mirdata/internal/mir"
)

const goodModule = `---
name: f
body: |
  BB0:
    $eax = MOV32ri 1
    RET64 implicit $eax
...
`

type memSink struct {
	records []bb.Example
}

func (s *memSink) Append(ex bb.Example) error {
	s.records = append(s.records, ex)
	return nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newRequest(t *testing.T, dir string, sink importer.Sink) *importer.Request {
	t.Helper()
	return &importer.Request{
		InputDir:      dir,
		Line:          testOptions(),
		Loader:        importer.LoaderFunc(mir.Load),
		Canonicalizer: mustCanonicalizer(t),
		Sink:          sink,
	}
}

func TestRun_PairedAndUnpairedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mir", goodModule)
	writeFile(t, dir, "a.ll.perf", "BB0,x,1.5\n")
	// b.mir loads fine but has no measurement file
	writeFile(t, dir, "b.mir", goodModule)

	sink := &memSink{}
	req := newRequest(t, dir, sink)
	req.Line.Scaling = 2.0

	res, err := importer.Run(context.Background(), req)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := importer.Counters{FilesProcessed: 1, FilesSkipped: 1, BlocksProcessed: 1, BlocksSkipped: 0}
	if res.Counters != want {
		t.Fatalf("Counters = %+v, want %+v", res.Counters, want)
	}
	if len(sink.records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(sink.records))
	}
	rec := sink.records[0]
	if rec.Throughput != 1.5*2.0 {
		t.Fatalf("Throughput = %v, want %v", rec.Throughput, 1.5*2.0)
	}
	if rec.Block.Name != "BB0" {
		t.Fatalf("Block.Name = %q, want BB0", rec.Block.Name)
	}
}

func TestRun_UnknownBlockIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mir", goodModule)
	writeFile(t, dir, "a.ll.perf", "BBX,x,2.0\n")

	sink := &memSink{}
	res, err := importer.Run(context.Background(), newRequest(t, dir, sink))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := importer.Counters{FilesProcessed: 1, BlocksProcessed: 1, BlocksSkipped: 1}
	if res.Counters != want {
		t.Fatalf("Counters = %+v, want %+v", res.Counters, want)
	}
	if len(sink.records) != 0 {
		t.Fatalf("len(records) = %d, want 0", len(sink.records))
	}
}

func TestRun_BadModuleFileIsIsolated(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mir", goodModule)
	writeFile(t, dir, "a.ll.perf", "BB0,x,1.0\n")
	writeFile(t, dir, "bad.mir", "this is not a machine-IR dump\n")
	writeFile(t, dir, "bad.ll.perf", "BB0,x,1.0\n")

	sink := &memSink{}
	res, err := importer.Run(context.Background(), newRequest(t, dir, sink))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Counters.FilesProcessed != 1 || res.Counters.FilesSkipped != 1 {
		t.Fatalf("Counters = %+v, want 1 processed / 1 skipped", res.Counters)
	}
	if len(sink.records) != 1 {
		t.Fatalf("len(records) = %d, want 1 (good file still imported)", len(sink.records))
	}
}

func TestRun_LineFaultIsolation(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mir", goodModule)
	// one good line, a blank line (not an attempt), two malformed lines,
	// one unknown block, one more good line
	perf := strings.Join([]string{
		"BB0,x,1.5",
		"",
		"BB0,x",
		"BB0,x,slow",
		"BBX,x,2.0",
		"BB0,x,4.0",
	}, "\n") + "\n"
	writeFile(t, dir, "a.ll.perf", perf)

	sink := &memSink{}
	res, err := importer.Run(context.Background(), newRequest(t, dir, sink))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := importer.Counters{FilesProcessed: 1, BlocksProcessed: 5, BlocksSkipped: 3}
	if res.Counters != want {
		t.Fatalf("Counters = %+v, want %+v", res.Counters, want)
	}
	if len(sink.records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(sink.records))
	}
	if sink.records[0].Throughput != 1.5 || sink.records[1].Throughput != 4.0 {
		t.Fatalf("records out of order: %v, %v", sink.records[0].Throughput, sink.records[1].Throughput)
	}
}

func TestRun_InvalidConfigAbortsBeforeProcessing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mir", goodModule)
	writeFile(t, dir, "a.ll.perf", "BB0,x,1.5\n")

	sink := &memSink{}
	req := newRequest(t, dir, sink)
	req.Line.ThroughputColumn = req.Line.NameColumn

	res, err := importer.Run(context.Background(), req)
	if err == nil {
		t.Fatal("Run succeeded with equal column indices, want error")
	}
	if !strings.Contains(err.Error(), "must differ") {
		t.Fatalf("error = %q, want column-validation message", err)
	}
	if res.Counters != (importer.Counters{}) {
		t.Fatalf("Counters = %+v, want zero (nothing processed)", res.Counters)
	}
	if len(sink.records) != 0 {
		t.Fatalf("len(records) = %d, want 0", len(sink.records))
	}
}

func TestRun_MissingInputDirIsFatal(t *testing.T) {
	sink := &memSink{}
	req := newRequest(t, filepath.Join(t.TempDir(), "nope"), sink)
	if _, err := importer.Run(context.Background(), req); err == nil {
		t.Fatal("Run succeeded on missing input dir, want error")
	}
}

func TestRun_Deterministic(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.mir", goodModule)
	writeFile(t, dir, "a.ll.perf", "BB0,x,1.5\nBB0,x,2.5\n")
	writeFile(t, dir, "b.mir", goodModule)
	writeFile(t, dir, "b.ll.perf", "BB0,x,3.5\n")

	first := &memSink{}
	if _, err := importer.Run(context.Background(), newRequest(t, dir, first)); err != nil {
		t.Fatalf("first Run: %v", err)
	}
	second := &memSink{}
	if _, err := importer.Run(context.Background(), newRequest(t, dir, second)); err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if diff := cmp.Diff(first.records, second.records); diff != "" {
		t.Fatalf("runs over immutable input differ (-first +second):\n%s", diff)
	}
}
