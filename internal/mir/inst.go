package mir

// Inst is one machine instruction as written in the dump: output operands
// (left of "="), the opcode, and input operands. Operands are kept as raw
// tokens; normalization is the canonicalizer's job.
type Inst struct {
	Defs   []string
	Opcode string
	Uses   []string
}
