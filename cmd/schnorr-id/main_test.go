// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package main

import (
	"bytes"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnb-chain/schnorr-id/config"
	"github.com/bnb-chain/schnorr-id/crypto/group"
	"github.com/bnb-chain/schnorr-id/test"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newApp(&out, &errOut).Run(append([]string{"schnorr-id", "--log-level", "error"}, args...))
	return out.String(), err
}

func runCommand(t *testing.T, cmd string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	err := newApp(&out, &errOut).Run(append([]string{"schnorr-id", cmd, "--log-level", "error"}, args...))
	return out.String(), err
}

func TestProveDefaults(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "p = 23\ng = 4\nq = 11\ny = 2\n")
	assert.Contains(t, out, "session 0: t=")
	assert.Contains(t, out, "proof accepted")
}

func TestProveSubcommandFlags(t *testing.T) {
	out, err := runCommand(t, "prove",
		"--p", "0x17", "--g", "5", "--q", "22", "--secret", "3", "--sessions", "5", "--concurrency", "2")
	require.NoError(t, err)
	// 5^3 mod 23
	assert.Contains(t, out, "y = 10\n")
	for _, line := range []string{"session 0: ", "session 4: "} {
		assert.Contains(t, out, line)
	}
	assert.NotContains(t, out, "rejected")
	assert.Contains(t, out, "proof accepted")
}

func TestProveGeneratedKeyOnSafePrime(t *testing.T) {
	out, err := runCommand(t, "prove",
		"--p", test.SafePrimeP, "--g", "4", "--q", test.SafePrimeQ, "--generate-key", "--sessions", "3", "--concurrency", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "proof accepted")
}

func TestProveFromConfigFile(t *testing.T) {
	c := config.Default()
	c.P, c.G, c.Q, c.Secret = big.NewInt(23), big.NewInt(5), big.NewInt(22), big.NewInt(1)
	c.Sessions = 2
	path := filepath.Join(t.TempDir(), "schnorr.toml")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, c.Save(f))
	require.NoError(t, f.Close())

	out, err := runCommand(t, "prove", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "y = 5\n")
	assert.Contains(t, out, "session 1: ")

	// flags win over the file
	out, err = runCommand(t, "prove", "--config", path, "--secret", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "y = 2\n")
}

func TestProveErrors(t *testing.T) {
	_, err := runCommand(t, "prove", "--p", "22")
	assert.ErrorIs(t, err, group.ErrInvalidParameters)

	_, err = runCommand(t, "prove", "--secret", "11")
	assert.ErrorIs(t, err, group.ErrInvalidParameters)

	_, err = runCommand(t, "prove", "--g", "five")
	assert.Error(t, err)

	_, err = runCommand(t, "prove", "--sessions", "0")
	assert.Error(t, err)

	_, err = runCommand(t, "prove", "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestProveTrustedSkipsFullValidation(t *testing.T) {
	// 5 has order 22, not 11, so only the trusted path gets as far as a verdict.
	_, err := runCommand(t, "prove", "--g", "5")
	assert.ErrorIs(t, err, group.ErrInvalidParameters)

	// 5^11 = -1 mod 23, so a session is accepted iff (r + 6c) / 11 rounds down
	// to an even number; either way every session reaches a verdict.
	out, err := runCommand(t, "prove", "--g", "5", "--trusted", "--sessions", "8")
	assert.Contains(t, out, "y = 8\n")
	for _, line := range []string{"session 0: t=", "session 7: t="} {
		assert.Contains(t, out, line)
	}
	if err == nil {
		assert.Contains(t, out, "proof accepted")
	} else {
		assert.ErrorIs(t, err, errRejected)
		assert.Contains(t, out, "proof rejected")
	}
}

func TestVerify(t *testing.T) {
	out, err := runCommand(t, "verify", "--y", "8", "--t", "4", "--c", "3", "--s", "0")
	require.NoError(t, err)
	assert.Equal(t, "proof accepted\n", out)

	out, err = runCommand(t, "verify", "--y", "8", "--t", "4", "--c", "3", "--s", "1")
	assert.ErrorIs(t, err, errRejected)
	assert.Equal(t, "proof rejected\n", out)

	// s outside [0, q)
	_, err = runCommand(t, "verify", "--y", "8", "--t", "4", "--c", "3", "--s", "11")
	assert.ErrorIs(t, err, errRejected)
}

func TestVerifyErrors(t *testing.T) {
	_, err := runCommand(t, "verify", "--y", "8", "--t", "4", "--c", "3")
	assert.Error(t, err, "--s is required")

	_, err = runCommand(t, "verify", "--y", "8", "--t", "4", "--c", "x", "--s", "0")
	assert.Error(t, err)

	_, err = runCommand(t, "verify", "--p", "21", "--y", "8", "--t", "4", "--c", "3", "--s", "0")
	assert.ErrorIs(t, err, group.ErrInvalidParameters)
}
