package mir

// Block is a machine basic block: a label and the instructions under it.
type Block struct {
	Name   string
	Instrs []Inst
}

// Empty reports whether the block carries no instructions.
func (b *Block) Empty() bool {
	return b == nil || len(b.Instrs) == 0
}
