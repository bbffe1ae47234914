package fm

// Register names one of the voice's scratch registers.
type Register uint8

// Scratch registers. None reads as zero and discards writes.
const (
	RegNone Register = iota
	RegOutput
	RegAdder
)

func (r Register) String() string {
	switch r {
	case RegOutput:
		return "output"
	case RegAdder:
		return "adder"
	}
	return "none"
}

// Route wires one operator: where its modulation comes from and where its
// output goes. Output overwrites, Adder accumulates.
type Route struct {
	Mod Register
	Out Register
}

// Algorithm holds one Route per operator, in operator order.
type Algorithm [4]Route

// NumAlgorithms is the number of built-in algorithms.
const NumAlgorithms = 8

// algorithms are evaluated in operator order, so an operator sees the
// registers as left by every lower-numbered operator in the same sample.
var algorithms = [NumAlgorithms]Algorithm{
	// Algorithm 0: [1]-[2]-[3]-[4]->
	{
		{RegNone, RegOutput},
		{RegOutput, RegOutput},
		{RegOutput, RegOutput},
		{RegOutput, RegOutput},
	},
	// Algorithm 1: ([1]+[2])-[3]-[4]->
	{
		{RegNone, RegAdder},
		{RegNone, RegAdder},
		{RegAdder, RegOutput},
		{RegOutput, RegOutput},
	},
	// Algorithm 2: ([1] + [2]-[3])-[4]->
	{
		{RegNone, RegAdder},
		{RegNone, RegOutput},
		{RegOutput, RegAdder},
		{RegAdder, RegOutput},
	},
	// Algorithm 3: [1] + [2]-[3]-[4]->
	{
		{RegNone, RegAdder},
		{RegNone, RegOutput},
		{RegOutput, RegOutput},
		{RegOutput, RegAdder},
	},
	// Algorithm 4: [1]-[2] + [3]-[4]->
	{
		{RegNone, RegOutput},
		{RegOutput, RegAdder},
		{RegNone, RegOutput},
		{RegOutput, RegAdder},
	},
	// Algorithm 5: [1] modulates [2], [3] and [4], which are summed.
	{
		{RegNone, RegOutput},
		{RegOutput, RegAdder},
		{RegOutput, RegAdder},
		{RegOutput, RegAdder},
	},
	// Algorithm 6: [1] + [2]-[3] + [4]->
	{
		{RegNone, RegAdder},
		{RegNone, RegOutput},
		{RegOutput, RegAdder},
		{RegNone, RegAdder},
	},
	// Algorithm 7: [1] + [2] + [3] + [4]->
	{
		{RegNone, RegAdder},
		{RegNone, RegAdder},
		{RegNone, RegAdder},
		{RegNone, RegAdder},
	},
}

// AlgorithmRoutes returns the routing of algorithm i.
func AlgorithmRoutes(i int) (Algorithm, error) {
	if i < 0 || i >= NumAlgorithms {
		return Algorithm{}, errAlgorithm(i)
	}
	return algorithms[i], nil
}
