// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package schnorr

import (
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/bnb-chain/schnorr-id/common"
	"github.com/bnb-chain/schnorr-id/crypto/group"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

type (
	// KeyPair holds the prover's secret x in [0, q) and the public y = g^x mod p.
	KeyPair struct {
		params *group.Parameters
		x,
		y *big.Int
	}
)

// NewKeyPair draws x uniformly from [0, q) using rand.
func NewKeyPair(params *group.Parameters, rand io.Reader) (*KeyPair, error) {
	if err := params.ValidateBasic(); err != nil {
		return nil, err
	}
	x, err := common.GetRandomIntBelow(rand, params.Q())
	if err != nil {
		return nil, errors.Wrap(err, "NewKeyPair: failed to sample secret")
	}
	return newKeyPair(params, x), nil
}

// NewKeyPairFromSecret derives the public value for an externally supplied x,
// which must lie in [0, q).
func NewKeyPairFromSecret(params *group.Parameters, x *big.Int) (*KeyPair, error) {
	if err := params.ValidateBasic(); err != nil {
		return nil, err
	}
	if !common.IsInRange(x, zero, params.Q()) {
		return nil, errors.Wrap(ErrInvalidParameters, "NewKeyPairFromSecret: secret must lie in [0, q)")
	}
	return newKeyPair(params, new(big.Int).Set(x)), nil
}

func newKeyPair(params *group.Parameters, x *big.Int) *KeyPair {
	y := common.ModInt(params.P()).Exp(params.G(), x)
	return &KeyPair{params: params, x: x, y: y}
}

func (kp *KeyPair) Params() *group.Parameters {
	return kp.params
}

// PublicKey returns a copy of y.
func (kp *KeyPair) PublicKey() *big.Int {
	return new(big.Int).Set(kp.y)
}
