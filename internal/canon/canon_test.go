package canon_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"mirdata/internal/bb"
	"mirdata/internal/canon"
	"mirdata/internal/mir"
)

func TestForTriple(t *testing.T) {
	tests := []struct {
		triple string
		ok     bool
	}{
		{"x86_64", true},
		{"x86_64-unknown-linux-gnu", true},
		{"amd64", true},
		{"aarch64", false},
		{"riscv64-unknown-elf", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.triple, func(t *testing.T) {
			c, err := canon.ForTriple(tt.triple)
			if tt.ok {
				if err != nil {
					t.Fatalf("ForTriple(%q) error: %v", tt.triple, err)
				}
				if c.Triple() != tt.triple {
					t.Fatalf("Triple() = %q, want %q", c.Triple(), tt.triple)
				}
				return
			}
			if err == nil {
				t.Fatalf("ForTriple(%q) succeeded, want error", tt.triple)
			}
			if !strings.Contains(err.Error(), "unsupported target triple") {
				t.Fatalf("error = %q, want unsupported-triple message", err)
			}
		})
	}
}

func TestCanonicalize_Normalization(t *testing.T) {
	c, err := canon.ForTriple("x86_64")
	if err != nil {
		t.Fatalf("ForTriple: %v", err)
	}
	block := &mir.Block{
		Name: "bb.0.entry",
		Instrs: []mir.Inst{
			{Defs: []string{"$EAX"}, Opcode: "mov32ri", Uses: []string{"42"}},
			{Opcode: "ADD32rr", Defs: []string{"$eax", "implicit-def $eflags"}, Uses: []string{"killed $eax", "%2"}},
			{Opcode: "JMP_1", Uses: []string{"%bb.1"}},
		},
	}
	got, err := c.Canonicalize(block)
	if err != nil {
		t.Fatalf("Canonicalize: %v", err)
	}
	want := bb.BasicBlock{
		Name: "bb.0.entry",
		Instructions: []bb.Instruction{
			{
				Mnemonic:       "MOV32RI",
				OutputOperands: []bb.Operand{{Kind: bb.OperandRegister, Name: "eax"}},
				InputOperands:  []bb.Operand{{Kind: bb.OperandImmediate, Value: 42}},
			},
			{
				Mnemonic: "ADD32RR",
				OutputOperands: []bb.Operand{
					{Kind: bb.OperandRegister, Name: "eax"},
					{Kind: bb.OperandRegister, Name: "eflags"},
				},
				InputOperands: []bb.Operand{
					{Kind: bb.OperandRegister, Name: "eax"},
					{Kind: bb.OperandVirtual, Name: "2"},
				},
			},
			{
				Mnemonic:      "JMP_1",
				InputOperands: []bb.Operand{{Kind: bb.OperandAddress, Name: "bb.1"}},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("canonicalized block mismatch (-want +got):\n%s", diff)
	}
}

func TestCanonicalize_Errors(t *testing.T) {
	c, err := canon.ForTriple("x86_64")
	if err != nil {
		t.Fatalf("ForTriple: %v", err)
	}
	tests := []struct {
		name    string
		block   *mir.Block
		wantErr string
	}{
		{
			name:    "empty_block",
			block:   &mir.Block{Name: "bb.9"},
			wantErr: "is empty",
		},
		{
			name: "empty_opcode",
			block: &mir.Block{
				Name:   "bb.1",
				Instrs: []mir.Inst{{Uses: []string{"$eax"}}},
			},
			wantErr: "empty opcode",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Canonicalize(tt.block)
			if err == nil {
				t.Fatal("Canonicalize succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
