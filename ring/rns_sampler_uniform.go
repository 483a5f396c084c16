package ring

import (
	"math/bits"

	"github.com/hehub-go/hehub/utils/sampling"
)

// UniformSampler samples polynomials with coefficients uniform in
// [0, q) for each component's modulus, by rejection sampling over the
// masked output of a deterministic [sampling.Source].
type UniformSampler struct {
	source *sampling.Source
}

// NewUniformSampler instantiates a new [UniformSampler] reading from
// the given source.
func NewUniformSampler(source *sampling.Source) *UniformSampler {
	return &UniformSampler{source: source}
}

// WithSource returns a shallow copy of the sampler reading from the
// given source. The copy can be used concurrently with the original.
func (s UniformSampler) WithSource(source *sampling.Source) *UniformSampler {
	return &UniformSampler{source: source}
}

// Read overwrites the coefficients of p with uniform values, one
// rejection-sampled stream per component. The representation-form tag
// of p is left untouched.
func (s *UniformSampler) Read(p *RNSPoly) {

	for i, q := range p.Moduli {

		mask := uint64(1)<<uint64(bits.Len64(q-1)) - 1

		values := p.Components[i]

		for j := range values {
			for {
				if v := s.source.Uint64() & mask; v < q {
					values[j] = v
					break
				}
			}
		}
	}
}

// ReadNew samples a new uniform polynomial in coefficient form with
// degree N and the given moduli.
func (s *UniformSampler) ReadNew(N int, moduli []uint64) (*RNSPoly, error) {

	p, err := NewRNSPoly(N, moduli)
	if err != nil {
		return nil, err
	}

	s.Read(p)

	return p, nil
}
