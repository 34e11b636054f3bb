// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package test holds group fixtures and deterministic randomness shared by the
// tests of this module.
package test

import (
	"bytes"
	"io"
	"math/big"

	"github.com/bnb-chain/schnorr-id/crypto/group"
)

const (
	// SafePrimeP is a 1024-bit safe prime, SafePrimeP = 2*SafePrimeQ + 1.
	SafePrimeP = "166160969984102002145306795980492325455630479804555055338380472938555356811832017137686265968149013542689269827613651813264251669858494453712323806712239457917653419345161673882698819212510452746379747709864049745293065685068029102215219753921624258343192181795744121636353839723797107852294369178639387657119"
	SafePrimeQ = "83080484992051001072653397990246162727815239902277527669190236469277678405916008568843132984074506771344634913806825906632125834929247226856161903356119728958826709672580836941349409606255226373189873854932024872646532842534014551107609876960812129171596090897872060818176919861898553926147184589319693828559"
)

// SmallGroup is the full multiplicative group of Z_23 generated by 5, q = p-1.
func SmallGroup() *group.Parameters {
	return mustParams(big.NewInt(23), big.NewInt(5), big.NewInt(22))
}

// SubGroup is the subgroup of prime order 11 of Z_23 generated by 4.
func SubGroup() *group.Parameters {
	return mustParams(big.NewInt(23), big.NewInt(4), big.NewInt(11))
}

// SafePrimeGroup is the subgroup of quadratic residues modulo SafePrimeP,
// generated by 4 = 2^2, of prime order SafePrimeQ.
func SafePrimeGroup() *group.Parameters {
	return mustParams(MustInt(SafePrimeP), big.NewInt(4), MustInt(SafePrimeQ))
}

func MustInt(decimal string) *big.Int {
	i, ok := new(big.Int).SetString(decimal, 10)
	if !ok {
		panic("test: bad integer literal " + decimal)
	}
	return i
}

// FixedReader serves exactly the given bytes and then io.EOF. For a group
// with q < 256 every byte below q is drawn as that value.
func FixedReader(bz ...byte) io.Reader {
	return bytes.NewReader(bz)
}

func mustParams(p, g, q *big.Int) *group.Parameters {
	params, err := group.NewParameters(p, g, q)
	if err != nil {
		panic(err)
	}
	return params
}
