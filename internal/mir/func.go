package mir

// Func is one machine function in a module.
type Func struct {
	Name   string
	Blocks []*Block
}
