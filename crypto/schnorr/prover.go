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

const (
	TaskCommit  = "commit"
	TaskRespond = "respond"
)

type (
	// Prover runs a single proof session: Idle -> Committed -> Responded.
	// A Prover is not safe for concurrent use; a new proof needs a new Prover.
	Prover struct {
		params *group.Parameters
		key    *KeyPair
		rand   io.Reader
		state  SessionState
		r      *big.Int
	}
)

// NewProver starts a session for key. The commitment nonce is drawn from rand.
func NewProver(params *group.Parameters, key *KeyPair, rand io.Reader) (*Prover, error) {
	if err := params.ValidateBasic(); err != nil {
		return nil, err
	}
	if key == nil || !sameGroup(params, key.params) {
		return nil, errors.Wrap(ErrInvalidParameters, "NewProver: key pair does not belong to these parameters")
	}
	if rand == nil {
		return nil, errors.New("NewProver: nil randomness source")
	}
	return &Prover{params: params, key: key, rand: rand, state: StateIdle}, nil
}

func (pr *Prover) State() SessionState {
	return pr.state
}

// Commit samples r from [0, q) and returns T = g^r mod p. A session commits
// exactly once: a second Commit fails with ErrProtocolOrder and the first r
// is kept.
func (pr *Prover) Commit() (*Commitment, error) {
	if pr.state != StateIdle {
		return nil, orderError(TaskCommit, pr.state, StateIdle)
	}
	r, err := common.GetRandomIntBelow(pr.rand, pr.params.Q())
	if err != nil {
		return nil, NewError(errors.Wrap(err, "failed to sample commitment nonce"), TaskCommit, pr.state)
	}
	t := common.ModInt(pr.params.P()).Exp(pr.params.G(), r)
	pr.r = r
	pr.state = StateCommitted
	common.Logger.Debugf("prover: committed t=%s", t)
	return &Commitment{T: t}, nil
}

// Respond returns S = (r + C*x) mod q and ends the session. The nonce is
// wiped, so each commitment answers exactly one challenge.
func (pr *Prover) Respond(ch *Challenge) (*Response, error) {
	if pr.state != StateCommitted {
		return nil, orderError(TaskRespond, pr.state, StateCommitted)
	}
	q := pr.params.Q()
	if ch == nil || !common.IsInRange(ch.C, zero, q) {
		return nil, NewError(errors.Wrap(ErrInvalidParameters, "challenge must lie in [0, q)"), TaskRespond, pr.state)
	}
	modQ := common.ModInt(q)
	s := modQ.Add(pr.r, modQ.Mul(ch.C, pr.key.x))
	pr.r.SetInt64(0)
	pr.r = nil
	pr.state = StateResponded
	common.Logger.Debugf("prover: responded c=%s s=%s", ch.C, s)
	return &Response{S: s}, nil
}

func sameGroup(a, b *group.Parameters) bool {
	if a == nil || b == nil {
		return false
	}
	if a == b {
		return true
	}
	return a.P().Cmp(b.P()) == 0 && a.G().Cmp(b.G()) == 0 && a.Q().Cmp(b.Q()) == 0
}
