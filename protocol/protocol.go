// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package protocol sequences the three moves of a Schnorr identification
// between an in-process prover and verifier. It owns no cryptographic state.
package protocol

import (
	"context"
	"io"
	"math/big"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/bnb-chain/schnorr-id/common"
	"github.com/bnb-chain/schnorr-id/crypto/group"
	"github.com/bnb-chain/schnorr-id/crypto/schnorr"
)

type (
	// Result is the outcome of one session. PublicKey and Transcript are not
	// secret and may be logged or displayed.
	Result struct {
		Accepted   bool
		PublicKey  *big.Int
		Transcript *schnorr.Transcript
	}
)

// Run performs commit, challenge, respond and verify, in that order, for a
// fresh session. A rejected proof is not an error.
func Run(params *group.Parameters, key *schnorr.KeyPair, proverRand, verifierRand io.Reader) (*Result, error) {
	if key == nil {
		return nil, errors.Wrap(schnorr.ErrInvalidParameters, "Run: nil key pair")
	}
	y := key.PublicKey()
	prover, err := schnorr.NewProver(params, key, proverRand)
	if err != nil {
		return nil, err
	}
	verifier, err := schnorr.NewVerifier(params, y, verifierRand)
	if err != nil {
		return nil, err
	}

	cmt, err := prover.Commit()
	if err != nil {
		return nil, err
	}
	ch, err := verifier.Challenge(cmt)
	if err != nil {
		return nil, err
	}
	resp, err := prover.Respond(ch)
	if err != nil {
		return nil, err
	}
	ok, err := verifier.Verify(resp)
	if err != nil {
		return nil, err
	}

	tr := verifier.Transcript()
	common.Logger.Debugf("session finished: y=%s %s accepted=%t", y, tr, ok)
	return &Result{Accepted: ok, PublicKey: y, Transcript: tr}, nil
}

// Demonstrate builds trusted parameters from (p, g, q), a key pair from secret
// (or a random one when secret is nil) and runs one session with rand serving
// both parties.
func Demonstrate(p, g, q, secret *big.Int, rand io.Reader) (*Result, error) {
	params, err := group.NewTrustedParameters(p, g, q)
	if err != nil {
		return nil, err
	}
	var key *schnorr.KeyPair
	if secret == nil {
		key, err = schnorr.NewKeyPair(params, rand)
	} else {
		key, err = schnorr.NewKeyPairFromSecret(params, secret)
	}
	if err != nil {
		return nil, err
	}
	return Run(params, key, rand, rand)
}

// RunSessions runs n independent sessions for key on at most concurrency
// goroutines. rand is shared between all of them through a locked reader.
// Sessions already started always finish; once ctx is done no new session
// starts. The returned slice has a nil entry for every session that failed
// or never ran, and the error aggregates every failure.
func RunSessions(ctx context.Context, params *group.Parameters, key *schnorr.KeyPair, n, concurrency int, rand io.Reader) ([]*Result, error) {
	if n < 0 {
		return nil, errors.Errorf("RunSessions: negative session count %d", n)
	}
	if rand == nil {
		return nil, errors.New("RunSessions: nil randomness source")
	}
	if concurrency < 1 {
		concurrency = 1
	}
	shared := common.NewLockedReader(rand)

	results := make([]*Result, n)
	errs := make([]error, n)
	sem := make(chan struct{}, concurrency)
	wg := sync.WaitGroup{}

	var stopped error
schedule:
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			stopped = errors.Wrapf(err, "stopped after scheduling %d of %d sessions", i, n)
			break
		}
		select {
		case <-ctx.Done():
			stopped = errors.Wrapf(ctx.Err(), "stopped after scheduling %d of %d sessions", i, n)
			break schedule
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i], errs[i] = Run(params, key, shared, shared)
		}(i)
	}
	wg.Wait()

	var multiErr error
	ran, accepted := 0, 0
	for i := range results {
		if results[i] != nil || errs[i] != nil {
			ran++
		}
		if errs[i] != nil {
			multiErr = multierror.Append(multiErr, errors.Wrapf(errs[i], "session %d", i))
			continue
		}
		if results[i] != nil && results[i].Accepted {
			accepted++
		}
	}
	if stopped != nil {
		multiErr = multierror.Append(multiErr, stopped)
	}
	common.Logger.Infof("ran %d of %d sessions: %d accepted", ran, n, accepted)
	return results, multiErr
}
