package ring

import (
	"fmt"
)

func (p *RNSPoly) checkCompatible(p1, p2 *RNSPoly, op string) error {

	if p1.N() != p2.N() || p.N() != p1.N() {
		return fmt.Errorf("cannot %s: mismatched ring degrees %d, %d, %d", op, p.N(), p1.N(), p2.N())
	}

	if len(p1.Components) != len(p2.Components) || len(p.Components) != len(p1.Components) {
		return fmt.Errorf("cannot %s: mismatched component counts %d, %d, %d", op, len(p.Components), len(p1.Components), len(p2.Components))
	}

	for i := range p1.Moduli {
		if p1.Moduli[i] != p2.Moduli[i] || p.Moduli[i] != p1.Moduli[i] {
			return fmt.Errorf("cannot %s: mismatched moduli at component %d", op, i)
		}
	}

	if p1.IsNTT != p2.IsNTT {
		return fmt.Errorf("cannot %s: mismatched representation forms", op)
	}

	return nil
}

// Add evaluates p = p1 + p2. Operands must have identical dimensions
// and representation forms, and be strictly reduced.
func (p *RNSPoly) Add(p1, p2 *RNSPoly) error {

	if err := p.checkCompatible(p1, p2, "Add"); err != nil {
		return err
	}

	for i, q := range p.Moduli {
		AddVec(p1.Components[i], p2.Components[i], p.Components[i], q)
	}

	p.IsNTT = p1.IsNTT

	return nil
}

// Sub evaluates p = p1 - p2. Operands must have identical dimensions
// and representation forms, and be strictly reduced.
func (p *RNSPoly) Sub(p1, p2 *RNSPoly) error {

	if err := p.checkCompatible(p1, p2, "Sub"); err != nil {
		return err
	}

	for i, q := range p.Moduli {
		SubVec(p1.Components[i], p2.Components[i], p.Components[i], q)
	}

	p.IsNTT = p1.IsNTT

	return nil
}

// Neg evaluates p = -p1. p1 must be strictly reduced.
func (p *RNSPoly) Neg(p1 *RNSPoly) error {

	if err := p.checkCompatible(p1, p1, "Neg"); err != nil {
		return err
	}

	for i, q := range p.Moduli {
		NegVec(p1.Components[i], p.Components[i], q)
	}

	p.IsNTT = p1.IsNTT

	return nil
}

// MulCoeffs evaluates p = p1 * p2 coefficient wise. Both operands must
// be in evaluation form, where the pointwise product implements the
// negacyclic polynomial product.
func (p *RNSPoly) MulCoeffs(p1, p2 *RNSPoly) error {

	if err := p.checkCompatible(p1, p2, "MulCoeffs"); err != nil {
		return err
	}

	if !p1.IsNTT {
		return fmt.Errorf("cannot MulCoeffs: operands are in coefficient form")
	}

	for i, q := range p.Moduli {
		r, err := GetRing(p.N(), q)
		if err != nil {
			return fmt.Errorf("cannot MulCoeffs: %w", err)
		}
		MulCoeffsBarrettVec(p1.Components[i], p2.Components[i], p.Components[i], q, r.BRedConstant)
	}

	p.IsNTT = true

	return nil
}

// MForm evaluates p = p1 * 2^64, bringing p1 into the Montgomery
// domain component wise. p1 must be strictly reduced.
func (p *RNSPoly) MForm(p1 *RNSPoly) error {

	if err := p.checkCompatible(p1, p1, "MForm"); err != nil {
		return err
	}

	for i, q := range p.Moduli {
		r, err := GetRing(p.N(), q)
		if err != nil {
			return fmt.Errorf("cannot MForm: %w", err)
		}
		MFormVec(p1.Components[i], p.Components[i], q, r.BRedConstant)
	}

	p.IsNTT = p1.IsNTT

	return nil
}

// IMForm evaluates p = p1 * (2^64)^-1, taking p1 out of the Montgomery
// domain component wise.
func (p *RNSPoly) IMForm(p1 *RNSPoly) error {

	if err := p.checkCompatible(p1, p1, "IMForm"); err != nil {
		return err
	}

	for i, q := range p.Moduli {
		r, err := GetRing(p.N(), q)
		if err != nil {
			return fmt.Errorf("cannot IMForm: %w", err)
		}
		IMFormVec(p1.Components[i], p.Components[i], q, r.MRedConstant)
	}

	p.IsNTT = p1.IsNTT

	return nil
}

// MulCoeffsMontgomery evaluates p = p1 * p2 coefficient wise, with p2
// in the Montgomery domain. Cheaper than [RNSPoly.MulCoeffs] when the
// same operand, brought once into the Montgomery domain with
// [RNSPoly.MForm], is reused across several products. Both operands
// must be in evaluation form.
func (p *RNSPoly) MulCoeffsMontgomery(p1, p2 *RNSPoly) error {

	if err := p.checkCompatible(p1, p2, "MulCoeffsMontgomery"); err != nil {
		return err
	}

	if !p1.IsNTT {
		return fmt.Errorf("cannot MulCoeffsMontgomery: operands are in coefficient form")
	}

	for i, q := range p.Moduli {
		r, err := GetRing(p.N(), q)
		if err != nil {
			return fmt.Errorf("cannot MulCoeffsMontgomery: %w", err)
		}
		MulCoeffsMontgomeryVec(p1.Components[i], p2.Components[i], p.Components[i], q, r.MRedConstant)
	}

	p.IsNTT = true

	return nil
}

// NTT transforms the receiver in place to evaluation form, with all
// components strictly reduced in [0, q-1]. The receiver must be in
// coefficient form and every modulus must support the negacyclic NTT
// of degree N.
func (p *RNSPoly) NTT() error {

	if p.IsNTT {
		return fmt.Errorf("cannot NTT: polynomial is already in evaluation form")
	}

	for i, q := range p.Moduli {
		r, err := GetRing(p.N(), q)
		if err != nil {
			return fmt.Errorf("cannot NTT: component %d: %w", i, err)
		}
		r.NTT(p.Components[i], p.Components[i])
	}

	p.IsNTT = true

	return nil
}

// NTTLazy transforms the receiver in place to evaluation form, with
// all components lazily reduced in [0, 2q-1]. The receiver must be in
// coefficient form.
func (p *RNSPoly) NTTLazy() error {

	if p.IsNTT {
		return fmt.Errorf("cannot NTTLazy: polynomial is already in evaluation form")
	}

	for i, q := range p.Moduli {
		r, err := GetRing(p.N(), q)
		if err != nil {
			return fmt.Errorf("cannot NTTLazy: component %d: %w", i, err)
		}
		r.NTTLazy(p.Components[i], p.Components[i])
	}

	p.IsNTT = true

	return nil
}

// INTT transforms the receiver in place back to coefficient form, with
// all components strictly reduced in [0, q-1]. The receiver must be in
// evaluation form; lazily reduced inputs in [0, 2q-1] are accepted.
func (p *RNSPoly) INTT() error {

	if !p.IsNTT {
		return fmt.Errorf("cannot INTT: polynomial is already in coefficient form")
	}

	for i, q := range p.Moduli {
		r, err := GetRing(p.N(), q)
		if err != nil {
			return fmt.Errorf("cannot INTT: component %d: %w", i, err)
		}
		r.INTT(p.Components[i], p.Components[i])
	}

	p.IsNTT = false

	return nil
}
