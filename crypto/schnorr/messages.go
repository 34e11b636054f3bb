// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package schnorr

import (
	"fmt"
	"math/big"
)

type (
	// Commitment is the prover's first message, T = g^r mod p.
	Commitment struct {
		T *big.Int
	}

	// Challenge is the verifier's message, C drawn from [0, q).
	Challenge struct {
		C *big.Int
	}

	// Response is the prover's final message, S = (r + C*x) mod q.
	Response struct {
		S *big.Int
	}

	// Transcript is everything needed to check a proof. None of it is secret.
	Transcript struct {
		T,
		C,
		S *big.Int
	}
)

func (tr *Transcript) String() string {
	return fmt.Sprintf("t=%s c=%s s=%s", tr.T, tr.C, tr.S)
}
