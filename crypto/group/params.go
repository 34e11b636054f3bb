// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/bnb-chain/schnorr-id/common"
)

const (
	primeTestN = 30
)

// ErrInvalidParameters is returned (wrapped) whenever (p, g, q) cannot describe
// a group in which a proof may be run.
var ErrInvalidParameters = errors.New("invalid domain parameters")

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

type (
	// Parameters describe the group shared by prover and verifier: the prime
	// modulus p, the generator g and the order q of the subgroup g generates.
	Parameters struct {
		p,
		g,
		q *big.Int
	}
)

// NewParameters validates (p, g, q) fully before returning them: p must be
// prime, q must divide p-1 and g must have order exactly q. A composite q is
// accepted only if it factors as described at TrialDivisionBound.
func NewParameters(p, g, q *big.Int) (*Parameters, error) {
	params, err := NewTrustedParameters(p, g, q)
	if err != nil {
		return nil, err
	}
	if err = params.Validate(); err != nil {
		return nil, err
	}
	return params, nil
}

// NewTrustedParameters accepts (p, g, q) as trusted input and only runs the
// basic checks of ValidateBasic. The values are copied.
func NewTrustedParameters(p, g, q *big.Int) (*Parameters, error) {
	params := &Parameters{p: copyInt(p), g: copyInt(g), q: copyInt(q)}
	if err := params.ValidateBasic(); err != nil {
		return nil, err
	}
	return params, nil
}

func (params *Parameters) P() *big.Int {
	return new(big.Int).Set(params.p)
}

func (params *Parameters) G() *big.Int {
	return new(big.Int).Set(params.g)
}

func (params *Parameters) Q() *big.Int {
	return new(big.Int).Set(params.q)
}

// ValidateBasic performs the checks that must hold before any exponentiation
// with these parameters is attempted.
func (params *Parameters) ValidateBasic() error {
	if params == nil || params.p == nil || params.g == nil || params.q == nil {
		return errors.Wrap(ErrInvalidParameters, "p, g and q must all be set")
	}
	if params.p.Cmp(two) <= 0 || params.p.Bit(0) == 0 {
		return errors.Wrapf(ErrInvalidParameters, "p = %s must be an odd integer > 2", params.p)
	}
	if !common.IsInRange(params.g, two, params.p) {
		return errors.Wrapf(ErrInvalidParameters, "g = %s must lie in (1, p)", params.g)
	}
	if !common.IsInRange(params.q, two, params.p) {
		return errors.Wrapf(ErrInvalidParameters, "q = %s must lie in (1, p)", params.q)
	}
	return nil
}

// Validate runs ValidateBasic and then proves the group structure: p is
// prime, q | p-1, g^q = 1 mod p and no proper divisor of q annihilates g.
func (params *Parameters) Validate() error {
	if err := params.ValidateBasic(); err != nil {
		return err
	}
	if !params.p.ProbablyPrime(primeTestN) {
		return errors.Wrapf(ErrInvalidParameters, "p = %s is not prime", params.p)
	}
	pMinus1 := new(big.Int).Sub(params.p, one)
	if new(big.Int).Mod(pMinus1, params.q).Sign() != 0 {
		return errors.Wrapf(ErrInvalidParameters, "q = %s does not divide p-1", params.q)
	}
	if common.ModInt(params.p).Exp(params.g, params.q).Cmp(one) != 0 {
		return errors.Wrapf(ErrInvalidParameters, "g^q mod p != 1 for g = %s, q = %s", params.g, params.q)
	}
	return checkExactOrder(params)
}

func (params *Parameters) String() string {
	return "p=" + params.p.String() + " g=" + params.g.String() + " q=" + params.q.String()
}

func copyInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}
