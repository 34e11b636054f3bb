// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package protocol_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"io"
	"math/big"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/schnorr-id/common"
	"github.com/bnb-chain/schnorr-id/crypto/group"
	"github.com/bnb-chain/schnorr-id/crypto/schnorr"
	. "github.com/bnb-chain/schnorr-id/protocol"
	"github.com/bnb-chain/schnorr-id/test"
)

func setUp(level string) {
	if err := common.SetLogLevel(level); err != nil {
		panic(err)
	}
}

func TestRun(t *testing.T) {
	setUp("debug")
	params := test.SmallGroup()
	key, err := schnorr.NewKeyPairFromSecret(params, big.NewInt(6))
	require.NoError(t, err)

	res, err := Run(params, key, test.FixedReader(4), test.FixedReader(3))
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, int64(8), res.PublicKey.Int64())
	assert.Equal(t, int64(4), res.Transcript.T.Int64())
	assert.Equal(t, int64(3), res.Transcript.C.Int64())
	assert.Equal(t, int64(0), res.Transcript.S.Int64())
	assert.True(t, res.Transcript.Verify(params, res.PublicKey))
}

func TestRunFreshNonces(t *testing.T) {
	setUp("info")
	params := test.SafePrimeGroup()
	key, err := schnorr.NewKeyPair(params, rand.Reader)
	require.NoError(t, err)

	first, err := Run(params, key, rand.Reader, rand.Reader)
	require.NoError(t, err)
	second, err := Run(params, key, rand.Reader, rand.Reader)
	require.NoError(t, err)
	assert.True(t, first.Accepted)
	assert.True(t, second.Accepted)
	assert.NotEqual(t, 0, first.Transcript.T.Cmp(second.Transcript.T), "every session must commit to a new nonce")
}

func TestRunInvalid(t *testing.T) {
	params := test.SmallGroup()
	key, err := schnorr.NewKeyPairFromSecret(params, big.NewInt(6))
	require.NoError(t, err)

	_, err = Run(params, nil, rand.Reader, rand.Reader)
	assert.ErrorIs(t, err, schnorr.ErrInvalidParameters)
	_, err = Run(test.SubGroup(), key, rand.Reader, rand.Reader)
	assert.ErrorIs(t, err, schnorr.ErrInvalidParameters)

	// the verifier's reader runs dry before a challenge is drawn
	_, err = Run(params, key, test.FixedReader(4), test.FixedReader())
	assert.ErrorIs(t, err, io.EOF)
}

func TestDemonstrate(t *testing.T) {
	setUp("info")
	res, err := Demonstrate(big.NewInt(23), big.NewInt(4), big.NewInt(11), big.NewInt(6), rand.Reader)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, int64(2), res.PublicKey.Int64(), "4^6 mod 23")

	res, err = Demonstrate(big.NewInt(23), big.NewInt(5), big.NewInt(22), nil, rand.Reader)
	require.NoError(t, err)
	assert.True(t, res.Accepted)
}

func TestDemonstrateScenario(t *testing.T) {
	// r = 4 for the prover, then c = 3 for the verifier, from one reader
	res, err := Demonstrate(big.NewInt(23), big.NewInt(5), big.NewInt(22), big.NewInt(6), test.FixedReader(4, 3))
	require.NoError(t, err)
	assert.True(t, res.Accepted)
	assert.Equal(t, "t=4 c=3 s=0", res.Transcript.String())
}

func TestDemonstrateInvalid(t *testing.T) {
	_, err := Demonstrate(big.NewInt(24), big.NewInt(5), big.NewInt(22), big.NewInt(6), rand.Reader)
	assert.ErrorIs(t, err, group.ErrInvalidParameters)
	_, err = Demonstrate(big.NewInt(23), big.NewInt(1), big.NewInt(22), big.NewInt(6), rand.Reader)
	assert.ErrorIs(t, err, group.ErrInvalidParameters)
	_, err = Demonstrate(big.NewInt(23), big.NewInt(5), big.NewInt(22), big.NewInt(22), rand.Reader)
	assert.ErrorIs(t, err, group.ErrInvalidParameters)
}

func TestRunSessionsConcurrent(t *testing.T) {
	setUp("info")
	params := test.SafePrimeGroup()
	key, err := schnorr.NewKeyPair(params, rand.Reader)
	require.NoError(t, err)

	const n = 16
	results, err := RunSessions(context.Background(), params, key, n, 4, rand.Reader)
	require.NoError(t, err)
	require.Len(t, results, n)

	commitments := make(map[string]bool, n)
	for i, res := range results {
		require.NotNil(t, res, "session %d", i)
		assert.True(t, res.Accepted, "session %d", i)
		commitments[res.Transcript.T.String()] = true
	}
	assert.Len(t, commitments, n, "no two sessions may share a commitment")
}

func TestRunSessionsSharedPlainReader(t *testing.T) {
	setUp("info")
	params := test.SubGroup()
	key, err := schnorr.NewKeyPair(params, rand.Reader)
	require.NoError(t, err)

	// bytes.Reader is not safe for concurrent use on its own
	pool := make([]byte, 4096)
	_, err = io.ReadFull(rand.Reader, pool)
	require.NoError(t, err)

	results, err := RunSessions(context.Background(), params, key, 64, 8, bytes.NewReader(pool))
	require.NoError(t, err)
	for _, res := range results {
		assert.True(t, res.Accepted)
	}
}

func TestRunSessionsAggregatesErrors(t *testing.T) {
	setUp("error")
	params := test.SmallGroup()
	key, err := schnorr.NewKeyPairFromSecret(params, big.NewInt(6))
	require.NoError(t, err)

	// enough randomness for exactly one session (r, c)
	results, err := RunSessions(context.Background(), params, key, 3, 1, test.FixedReader(4, 3))
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	assert.Len(t, merr.Errors, 2)
	assert.ErrorIs(t, err, io.EOF)

	require.Len(t, results, 3)
	require.NotNil(t, results[0])
	assert.True(t, results[0].Accepted)
	assert.Nil(t, results[1])
	assert.Nil(t, results[2])
}

func TestRunSessionsCancelled(t *testing.T) {
	params := test.SmallGroup()
	key, err := schnorr.NewKeyPairFromSecret(params, big.NewInt(6))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := RunSessions(ctx, params, key, 5, 2, rand.Reader)
	assert.ErrorIs(t, err, context.Canceled)
	for _, res := range results {
		assert.Nil(t, res)
	}
}

func TestRunSessionsBadInput(t *testing.T) {
	params := test.SmallGroup()
	key, err := schnorr.NewKeyPairFromSecret(params, big.NewInt(6))
	require.NoError(t, err)

	results, err := RunSessions(context.Background(), params, key, 0, 1, rand.Reader)
	assert.NoError(t, err)
	assert.Empty(t, results)

	_, err = RunSessions(context.Background(), params, key, -1, 1, rand.Reader)
	assert.Error(t, err)
	_, err = RunSessions(context.Background(), params, key, 1, 1, nil)
	assert.Error(t, err)
}
