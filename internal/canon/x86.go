package canon

import (
	"fmt"
	"strconv"
	"strings"

	"mirdata/internal/bb"
	"mirdata/internal/mir"
)

// x86Canonicalizer normalizes x86-64 machine instructions: mnemonics are
// uppercased, physical registers lose their "$" sigil and are lowercased,
// virtual registers lose "%", immediates are parsed into values.
type x86Canonicalizer struct {
	triple string
}

func (c *x86Canonicalizer) Triple() string { return c.triple }

func (c *x86Canonicalizer) Canonicalize(b *mir.Block) (bb.BasicBlock, error) {
	if b.Empty() {
		return bb.BasicBlock{}, fmt.Errorf("block %q is empty", blockName(b))
	}
	out := bb.BasicBlock{
		Name:         b.Name,
		Instructions: make([]bb.Instruction, 0, len(b.Instrs)),
	}
	for i, inst := range b.Instrs {
		norm, err := c.instruction(inst)
		if err != nil {
			return bb.BasicBlock{}, fmt.Errorf("block %q, instruction %d: %w", b.Name, i, err)
		}
		out.Instructions = append(out.Instructions, norm)
	}
	return out, nil
}

func (c *x86Canonicalizer) instruction(inst mir.Inst) (bb.Instruction, error) {
	if inst.Opcode == "" {
		return bb.Instruction{}, fmt.Errorf("empty opcode")
	}
	norm := bb.Instruction{Mnemonic: strings.ToUpper(inst.Opcode)}
	for _, tok := range inst.Defs {
		op, err := c.operand(tok)
		if err != nil {
			return bb.Instruction{}, err
		}
		norm.OutputOperands = append(norm.OutputOperands, op)
	}
	for _, tok := range inst.Uses {
		op, err := c.operand(tok)
		if err != nil {
			return bb.Instruction{}, err
		}
		norm.InputOperands = append(norm.InputOperands, op)
	}
	return norm, nil
}

func (c *x86Canonicalizer) operand(tok string) (bb.Operand, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return bb.Operand{}, fmt.Errorf("empty operand")
	}
	// register flag annotations ("implicit-def $eflags", "killed $rdi") wrap
	// the register token; the flags themselves are not kept
	fields := strings.Fields(tok)
	tok = fields[len(fields)-1]

	switch {
	case strings.HasPrefix(tok, "$"):
		return bb.Operand{Kind: bb.OperandRegister, Name: strings.ToLower(tok[1:])}, nil
	case strings.HasPrefix(tok, "%bb."):
		return bb.Operand{Kind: bb.OperandAddress, Name: tok[1:]}, nil
	case strings.HasPrefix(tok, "%"):
		return bb.Operand{Kind: bb.OperandVirtual, Name: tok[1:]}, nil
	}
	if v, err := strconv.ParseInt(tok, 0, 64); err == nil {
		return bb.Operand{Kind: bb.OperandImmediate, Value: v}, nil
	}
	return bb.Operand{Kind: bb.OperandOther, Name: tok}, nil
}

func blockName(b *mir.Block) string {
	if b == nil {
		return "<nil>"
	}
	return b.Name
}
