package nnue

import (
	"encoding/binary"
	"fmt"
	"io"
)

// magic is the 4-byte file signature of spec.md §4.2's NNUE weights format.
var magic = [4]byte{'S', 'N', 'N', '1'}

// FileHeader is the fixed-size header preceding the weight arrays.
type FileHeader struct {
	Magic      [4]byte
	InputSize  uint16
	HiddenSize uint16
	Version    uint16
	Flags      uint16
}

// LoadWeights reads a network from r in the "SNN1" binary format: header,
// then little-endian f32 arrays w1[input*hidden], b1[hidden], w2[hidden],
// b2 (scalar). A malformed or mismatched file is reported as an error so
// the caller can fall back to operating without the NNUE mix, per
// spec.md §7's "TT / accumulator size mismatch on load" handling.
func LoadWeights(r io.Reader) (*Network, error) {
	var hdr FileHeader
	if err := binary.Read(r, binary.LittleEndian, &hdr.Magic); err != nil {
		return nil, fmt.Errorf("nnue: reading magic: %w", err)
	}
	if hdr.Magic != magic {
		return nil, fmt.Errorf("nnue: bad magic %q, want %q", hdr.Magic, magic)
	}
	for _, field := range []*uint16{&hdr.InputSize, &hdr.HiddenSize, &hdr.Version, &hdr.Flags} {
		if err := binary.Read(r, binary.LittleEndian, field); err != nil {
			return nil, fmt.Errorf("nnue: reading header: %w", err)
		}
	}

	net := NewNetwork(int(hdr.InputSize), int(hdr.HiddenSize))
	if err := binary.Read(r, binary.LittleEndian, net.W1); err != nil {
		return nil, fmt.Errorf("nnue: reading w1: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, net.B1); err != nil {
		return nil, fmt.Errorf("nnue: reading b1: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, net.W2); err != nil {
		return nil, fmt.Errorf("nnue: reading w2: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &net.B2); err != nil {
		return nil, fmt.Errorf("nnue: reading b2: %w", err)
	}
	return net, nil
}

// SaveWeights writes net to w in the "SNN1" binary format.
func SaveWeights(w io.Writer, net *Network) error {
	hdr := FileHeader{
		Magic:      magic,
		InputSize:  uint16(net.InputSize),
		HiddenSize: uint16(net.HiddenSize),
		Version:    1,
	}
	if err := binary.Write(w, binary.LittleEndian, hdr.Magic); err != nil {
		return fmt.Errorf("nnue: writing magic: %w", err)
	}
	for _, field := range []uint16{hdr.InputSize, hdr.HiddenSize, hdr.Version, hdr.Flags} {
		if err := binary.Write(w, binary.LittleEndian, field); err != nil {
			return fmt.Errorf("nnue: writing header: %w", err)
		}
	}
	if err := binary.Write(w, binary.LittleEndian, net.W1); err != nil {
		return fmt.Errorf("nnue: writing w1: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, net.B1); err != nil {
		return fmt.Errorf("nnue: writing b1: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, net.W2); err != nil {
		return fmt.Errorf("nnue: writing w2: %w", err)
	}
	return binary.Write(w, binary.LittleEndian, net.B2)
}
