// Package bb defines the canonicalized basic-block records that make up a
// training dataset: normalized instructions paired with a measured throughput
// and its provenance.
package bb

// OperandKind classifies a normalized instruction operand.
type OperandKind uint8

const (
	// OperandRegister is a physical register operand.
	OperandRegister OperandKind = iota + 1
	// OperandVirtual is a virtual (unallocated) register operand.
	OperandVirtual
	// OperandImmediate is an integer immediate operand.
	OperandImmediate
	// OperandAddress is a memory or block address operand.
	OperandAddress
	// OperandOther covers tokens the canonicalizer keeps verbatim.
	OperandOther
)

// String returns the string representation of OperandKind.
func (k OperandKind) String() string {
	switch k {
	case OperandRegister:
		return "register"
	case OperandVirtual:
		return "virtual"
	case OperandImmediate:
		return "immediate"
	case OperandAddress:
		return "address"
	case OperandOther:
		return "other"
	default:
		return "unknown"
	}
}

// Operand is one normalized operand.
type Operand struct {
	Kind OperandKind `msgpack:"kind"`
	// Name is the canonical spelling (register name, address token).
	Name string `msgpack:"name,omitempty"`
	// Value is set for immediate operands.
	Value int64 `msgpack:"value,omitempty"`
}

// Instruction is one normalized instruction of a canonicalized block.
type Instruction struct {
	Mnemonic       string    `msgpack:"mnemonic"`
	OutputOperands []Operand `msgpack:"outputs,omitempty"`
	InputOperands  []Operand `msgpack:"inputs,omitempty"`
}

// BasicBlock is a canonicalized basic block.
type BasicBlock struct {
	Name         string        `msgpack:"name"`
	Instructions []Instruction `msgpack:"instructions"`
}

// Example is the unit of dataset output: one canonicalized block with its
// scaled throughput and the measurement source it came from.
type Example struct {
	SourceName string     `msgpack:"source_name"`
	Throughput float64    `msgpack:"throughput"`
	Block      BasicBlock `msgpack:"block"`
}
