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
	TaskChallenge = "challenge"
	TaskVerify    = "verify"
)

type (
	// Verifier runs a single proof session: Idle -> Challenged -> Verified.
	Verifier struct {
		params *group.Parameters
		y      *big.Int
		rand   io.Reader
		state  SessionState
		t,
		c,
		s *big.Int
	}
)

// NewVerifier starts a session checking knowledge of log_g(y). Challenges are
// drawn from rand.
func NewVerifier(params *group.Parameters, y *big.Int, rand io.Reader) (*Verifier, error) {
	if err := params.ValidateBasic(); err != nil {
		return nil, err
	}
	if !common.IsInRange(y, one, params.P()) {
		return nil, errors.Wrap(ErrInvalidParameters, "NewVerifier: public value must lie in [1, p)")
	}
	if rand == nil {
		return nil, errors.New("NewVerifier: nil randomness source")
	}
	return &Verifier{params: params, y: new(big.Int).Set(y), rand: rand, state: StateIdle}, nil
}

func (v *Verifier) State() SessionState {
	return v.state
}

// Challenge records the prover's commitment and draws C from [0, q). C does
// not depend on T.
func (v *Verifier) Challenge(cmt *Commitment) (*Challenge, error) {
	if v.state != StateIdle {
		return nil, orderError(TaskChallenge, v.state, StateIdle)
	}
	if cmt == nil || cmt.T == nil {
		return nil, NewError(errors.Wrap(ErrInvalidParameters, "missing commitment"), TaskChallenge, v.state)
	}
	c, err := common.GetRandomIntBelow(v.rand, v.params.Q())
	if err != nil {
		return nil, NewError(errors.Wrap(err, "failed to sample challenge"), TaskChallenge, v.state)
	}
	v.t = new(big.Int).Set(cmt.T)
	v.c = c
	v.state = StateChallenged
	common.Logger.Debugf("verifier: challenged t=%s with c=%s", v.t, c)
	return &Challenge{C: new(big.Int).Set(c)}, nil
}

// Verify checks the response against the recorded commitment and challenge
// and ends the session.
func (v *Verifier) Verify(resp *Response) (bool, error) {
	if v.state != StateChallenged {
		return false, orderError(TaskVerify, v.state, StateChallenged)
	}
	if resp == nil || resp.S == nil {
		return false, NewError(errors.Wrap(ErrInvalidParameters, "missing response"), TaskVerify, v.state)
	}
	v.s = new(big.Int).Set(resp.S)
	v.state = StateVerified
	ok := Verify(v.params, v.y, v.t, v.c, v.s)
	if ok {
		common.Logger.Debugf("verifier: accepted t=%s c=%s s=%s", v.t, v.c, v.s)
	} else {
		common.Logger.Warnf("verifier: rejected t=%s c=%s s=%s", v.t, v.c, v.s)
	}
	return ok, nil
}

// Transcript returns the checked (t, c, s), or nil before Verify.
func (v *Verifier) Transcript() *Transcript {
	if v.state != StateVerified {
		return nil
	}
	return &Transcript{T: new(big.Int).Set(v.t), C: new(big.Int).Set(v.c), S: new(big.Int).Set(v.s)}
}

// Verify reports whether g^s = t * y^c mod p. It is a pure function of its
// inputs and returns false for nil or out-of-range values: t and y must lie
// in [1, p), c and s in [0, q).
func Verify(params *group.Parameters, y, t, c, s *big.Int) bool {
	if params.ValidateBasic() != nil {
		return false
	}
	p, q := params.P(), params.Q()
	if !common.IsInRange(y, one, p) || !common.IsInRange(t, one, p) ||
		!common.IsInRange(c, zero, q) || !common.IsInRange(s, zero, q) {
		return false
	}
	modP := common.ModInt(p)
	lhs := modP.Exp(params.G(), s)
	rhs := modP.Mul(t, modP.Exp(y, c))
	return lhs.Cmp(rhs) == 0
}

// Verify checks the transcript against the public value y.
func (tr *Transcript) Verify(params *group.Parameters, y *big.Int) bool {
	if tr == nil {
		return false
	}
	return Verify(params, y, tr.T, tr.C, tr.S)
}
