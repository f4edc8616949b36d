package nnue

// Network is the single-hidden-layer network described by the "SNN1" file
// format: a linear input-to-hidden transform (W1, B1) followed by a clipped
// linear hidden-to-output transform (W2, B2).
type Network struct {
	InputSize  int
	HiddenSize int

	W1 []float32 // InputSize rows of HiddenSize, row-major by input feature
	B1 []float32 // HiddenSize
	W2 []float32 // HiddenSize
	B2 float32
}

// NewNetwork allocates a zeroed network of the given shape.
func NewNetwork(inputSize, hiddenSize int) *Network {
	return &Network{
		InputSize:  inputSize,
		HiddenSize: hiddenSize,
		W1:         make([]float32, inputSize*hiddenSize),
		B1:         make([]float32, hiddenSize),
		W2:         make([]float32, hiddenSize),
	}
}

// inputRow returns the weight row for input feature idx.
func (n *Network) inputRow(idx int) []float32 {
	start := idx * n.HiddenSize
	return n.W1[start : start+n.HiddenSize]
}

// lcg is a minimal linear congruential generator used only to produce
// reproducible placeholder weights when no trained file is supplied (e.g.
// in tests); production weights always come from LoadWeights.
type lcg struct{ state uint64 }

func newLCG(seed uint64) *lcg { return &lcg{state: seed} }

func (g *lcg) next() float32 {
	g.state = g.state*6364136223846793005 + 1442695040888963407
	v := float32(int32(g.state>>33)) / float32(1<<31)
	return v * 0.1
}

// InitRandom fills the network with small reproducible pseudo-random
// weights, for environments that exercise the NNUE path without a trained
// weights file.
func (n *Network) InitRandom(seed uint64) {
	g := newLCG(seed)
	for i := range n.W1 {
		n.W1[i] = g.next()
	}
	for i := range n.B1 {
		n.B1[i] = g.next()
	}
	for i := range n.W2 {
		n.W2[i] = g.next()
	}
	n.B2 = g.next()
}
