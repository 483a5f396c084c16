package ckks

import (
	"github.com/hehub-go/hehub/ring"
)

// Plaintext is an RNS polynomial carrying the scaling factor by which
// the encoded values were multiplied during quantization.
type Plaintext struct {
	*ring.RNSPoly
	ScalingFactor float64
}

// NewPlaintext creates a new zeroed plaintext in coefficient form with
// the given dimensions and scaling factor.
func NewPlaintext(dims ring.PolyDimensions, scalingFactor float64) (*Plaintext, error) {

	p, err := ring.NewRNSPolyFromDimensions(dims)
	if err != nil {
		return nil, err
	}

	return &Plaintext{RNSPoly: p, ScalingFactor: scalingFactor}, nil
}

// Clone returns a deep copy of the receiver.
func (pt *Plaintext) Clone() *Plaintext {
	return &Plaintext{RNSPoly: pt.RNSPoly.Clone(), ScalingFactor: pt.ScalingFactor}
}
