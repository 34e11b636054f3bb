// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package schnorr

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/bnb-chain/schnorr-id/crypto/group"
)

var (
	// ErrProtocolOrder is returned (wrapped in *Error) when a session operation
	// is invoked out of sequence. It is fatal to that session only.
	ErrProtocolOrder = errors.New("protocol order violation")

	ErrInvalidParameters = group.ErrInvalidParameters
)

type SessionState int

const (
	StateIdle SessionState = iota
	StateCommitted
	StateResponded
	StateChallenged
	StateVerified
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCommitted:
		return "committed"
	case StateResponded:
		return "responded"
	case StateChallenged:
		return "challenged"
	case StateVerified:
		return "verified"
	}
	return fmt.Sprintf("SessionState(%d)", int(s))
}

// Error records which session operation failed and the state the session was
// in at the time.
type Error struct {
	cause error
	task  string
	state SessionState
}

func NewError(err error, task string, state SessionState) *Error {
	return &Error{cause: err, task: task, state: state}
}

func (err *Error) Unwrap() error { return err.cause }

func (err *Error) Cause() error { return err.cause }

func (err *Error) Task() string { return err.task }

func (err *Error) State() SessionState { return err.state }

func (err *Error) Error() string {
	if err == nil || err.cause == nil {
		return "Error is nil"
	}
	return fmt.Sprintf("task %s, state %s: %s", err.task, err.state, err.cause.Error())
}

func orderError(task string, state SessionState, want SessionState) error {
	return NewError(errors.Wrapf(ErrProtocolOrder, "%s requires state %s", task, want), task, state)
}
