// Package mir models machine-IR dumps: modules of machine functions made of
// named basic blocks, and a loader for the textual .mir dump format.
package mir

// Module is an ordered collection of machine functions loaded from one dump
// file. Block names are assumed unique within a module but this is not
// enforced; lookups resolve to the first match in module order.
type Module struct {
	Path  string
	Funcs []*Func
}

// BlockByName resolves a basic block by its label, scanning functions and
// blocks in module order. Returns nil when no block matches.
func (m *Module) BlockByName(name string) *Block {
	if m == nil || name == "" {
		return nil
	}
	for _, fn := range m.Funcs {
		for _, b := range fn.Blocks {
			if b.Name == name {
				return b
			}
		}
	}
	return nil
}

// NumBlocks returns the total basic block count across all functions.
func (m *Module) NumBlocks() int {
	if m == nil {
		return 0
	}
	n := 0
	for _, fn := range m.Funcs {
		n += len(fn.Blocks)
	}
	return n
}
