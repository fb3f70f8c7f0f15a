package mir

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Load reads a textual .mir dump from disk and parses it into a Module.
func Load(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	return Parse(path, f)
}

type parseState uint8

const (
	stateTop    parseState = iota // between documents
	stateSkipIR                   // inside an embedded "--- |" IR document
	stateHeader                   // inside a machine function header
	stateBody                     // inside "body: |"
)

// Parse consumes a textual .mir dump. The format is a sequence of YAML-like
// documents: an optional embedded IR document ("--- |" ... "..."), then one
// document per machine function with a "name:" field and a "body: |" section
// containing block labels and instruction lines.
//
// path is used for error messages only.
func Parse(path string, r io.Reader) (*Module, error) {
	mod := &Module{Path: path}
	state := stateTop

	var (
		fn    *Func
		block *Block
	)

	flush := func() error {
		if fn == nil {
			return nil
		}
		if fn.Name == "" {
			return fmt.Errorf("%s: machine function without name", path)
		}
		mod.Funcs = append(mod.Funcs, fn)
		fn = nil
		block = nil
		return nil
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		switch state {
		case stateSkipIR:
			if trimmed == "..." {
				state = stateTop
			}
			continue
		case stateTop, stateHeader, stateBody:
			// document boundaries are handled uniformly below
		}

		switch {
		case trimmed == "--- |":
			if err := flush(); err != nil {
				return nil, err
			}
			state = stateSkipIR
			continue
		case trimmed == "---" || strings.HasPrefix(trimmed, "--- "):
			if err := flush(); err != nil {
				return nil, err
			}
			fn = &Func{}
			state = stateHeader
			continue
		case trimmed == "...":
			if err := flush(); err != nil {
				return nil, err
			}
			state = stateTop
			continue
		}

		switch state {
		case stateTop:
			// stray content outside any document is tolerated (llc version
			// banners and the like)
			continue
		case stateHeader:
			if name, ok := strings.CutPrefix(trimmed, "name:"); ok {
				fn.Name = strings.TrimSpace(name)
				continue
			}
			if strings.HasPrefix(trimmed, "body:") {
				state = stateBody
				continue
			}
			// other header fields (alignment, registers, frameInfo) carry
			// nothing we need
			continue
		case stateBody:
			if trimmed == "" {
				continue
			}
			if name, ok := blockLabel(trimmed); ok {
				block = &Block{Name: name}
				fn.Blocks = append(fn.Blocks, block)
				continue
			}
			if isBlockAttr(trimmed) {
				continue
			}
			if block == nil {
				return nil, fmt.Errorf("%s:%d: instruction outside basic block", path, lineno)
			}
			inst, err := parseInst(trimmed)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
			}
			block.Instrs = append(block.Instrs, inst)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(mod.Funcs) == 0 {
		return nil, fmt.Errorf("%s: no machine functions", path)
	}
	return mod, nil
}

// blockLabel reports whether the line opens a basic block and returns its
// name. Labels look like "bb.0.entry:" or "bb.1 (address-taken):"; a plain
// single-token label ("BB12:") is accepted too.
func blockLabel(line string) (string, bool) {
	if !strings.HasSuffix(line, ":") {
		return "", false
	}
	name := strings.TrimSuffix(line, ":")
	if idx := strings.Index(name, " ("); idx >= 0 {
		name = name[:idx]
	}
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, " \t") {
		return "", false
	}
	if isBlockAttr(name + ":") {
		return "", false
	}
	return name, true
}

// isBlockAttr reports whether the line is block metadata rather than an
// instruction (successor lists, livein lists).
func isBlockAttr(line string) bool {
	for _, key := range []string{"successors:", "liveins:"} {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}

// parseInst splits one instruction line into defs, opcode and uses.
// Lines look like "$eax = MOV32ri 1" or "RET64 $eax"; "frame-setup" and
// "frame-destroy" markers before the opcode are dropped, as is any trailing
// comment.
func parseInst(line string) (Inst, error) {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)

	var inst Inst
	rhs := line
	if lhs, rest, ok := strings.Cut(line, " = "); ok {
		inst.Defs = splitOperands(lhs)
		rhs = rest
	}
	fields := strings.Fields(rhs)
	for len(fields) > 0 && (fields[0] == "frame-setup" || fields[0] == "frame-destroy") {
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return Inst{}, fmt.Errorf("missing opcode in %q", line)
	}
	inst.Opcode = fields[0]
	inst.Uses = splitOperands(strings.Join(fields[1:], " "))
	return inst, nil
}

func splitOperands(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
