// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"math/big"
	"sync"

	"github.com/otiai10/primes"
	"github.com/pkg/errors"

	"github.com/bnb-chain/schnorr-id/common"
)

// TrialDivisionBound caps the primes tried as factors of q. Every q below
// TrialDivisionBound^2 = 2^32 is factored completely; a larger q must be a
// product of primes below the bound and at most one probable prime cofactor,
// as q = p-1 = 2*q' is for a safe prime p.
const TrialDivisionBound int64 = 1 << 16

// primes.Globally caches sieves process-wide and is not safe for concurrent use.
var sieveMu sync.Mutex

func sieve(n int64) []int64 {
	sieveMu.Lock()
	defer sieveMu.Unlock()
	list := primes.Until(n).List()
	out := make([]int64, len(list))
	copy(out, list)
	return out
}

// primeFactors returns the distinct prime factors of n, or ok == false when
// what is left after trial division is composite.
func primeFactors(n *big.Int) (factors []*big.Int, ok bool) {
	limit := TrialDivisionBound
	if root := new(big.Int).Sqrt(n); root.Cmp(big.NewInt(limit)) < 0 {
		// +1 so that root itself is sieved whether or not Until includes its bound
		limit = root.Int64() + 1
	}
	m, rem := new(big.Int).Set(n), new(big.Int)
	for _, p := range sieve(limit) {
		f := big.NewInt(p)
		if rem.Mod(m, f).Sign() != 0 {
			continue
		}
		factors = append(factors, f)
		for rem.Mod(m, f).Sign() == 0 {
			m.Quo(m, f)
		}
	}
	switch {
	case m.Cmp(one) == 0:
	case m.ProbablyPrime(primeTestN):
		factors = append(factors, m)
	default:
		return nil, false
	}
	return factors, true
}

// checkExactOrder assumes g^q = 1 mod p and g != 1, so the order of g divides
// q. It is exactly q iff g^(q/f) != 1 for every prime factor f of q.
func checkExactOrder(params *Parameters) error {
	q := params.q
	if q.ProbablyPrime(primeTestN) {
		// the only divisors of a prime q are 1 and q; g != 1 rules out the former
		return nil
	}
	factors, ok := primeFactors(q)
	if !ok {
		return errors.Wrapf(ErrInvalidParameters,
			"q = %s has a composite cofactor after trial division up to %d: order of g cannot be proven", q, TrialDivisionBound)
	}
	modP := common.ModInt(params.p)
	for _, f := range factors {
		e := new(big.Int).Quo(q, f)
		if modP.Exp(params.g, e).Cmp(one) == 0 {
			return errors.Wrapf(ErrInvalidParameters, "g = %s has order dividing q/%s = %s, not q = %s", params.g, f, e, q)
		}
	}
	common.Logger.Debugf("order of g = %s is exactly q = %s", params.g, q)
	return nil
}
