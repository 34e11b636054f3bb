// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package main

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/pkg/errors"
	cli "github.com/urfave/cli/v2"

	"github.com/bnb-chain/schnorr-id/common"
	"github.com/bnb-chain/schnorr-id/config"
	"github.com/bnb-chain/schnorr-id/crypto/schnorr"
	"github.com/bnb-chain/schnorr-id/protocol"
)

// Automatically set through -ldflags
// Example: go install -ldflags "-X main.version=`git describe --tags`"
var version = "master"

const (
	exitRejected = 2
	exitFailure  = 1
)

var errRejected = errors.New("proof rejected")

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML file with p, g, q, secret, sessions, concurrency, trusted and log_level",
	}
	pFlag = &cli.StringFlag{
		Name:  "p",
		Usage: "prime modulus (decimal, or 0x-prefixed hex)",
	}
	gFlag = &cli.StringFlag{
		Name:  "g",
		Usage: "generator of the subgroup of order q",
	}
	qFlag = &cli.StringFlag{
		Name:  "q",
		Usage: "order of g",
	}
	secretFlag = &cli.StringFlag{
		Name:  "secret",
		Usage: "prover secret x in [0, q)",
	}
	generateKeyFlag = &cli.BoolFlag{
		Name:  "generate-key",
		Usage: "draw a random secret instead of using the configured one",
	}
	sessionsFlag = &cli.IntFlag{
		Name:  "sessions",
		Usage: "number of independent proof sessions",
	}
	concurrencyFlag = &cli.IntFlag{
		Name:  "concurrency",
		Usage: "number of sessions run at the same time",
	}
	trustedFlag = &cli.BoolFlag{
		Name:  "trusted",
		Usage: "accept p, g, q without checking primality and the order of g",
	}
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "debug, info, warn or error",
	}

	yFlag = &cli.StringFlag{Name: "y", Usage: "public value g^x mod p", Required: true}
	tFlag = &cli.StringFlag{Name: "t", Usage: "commitment", Required: true}
	cFlag = &cli.StringFlag{Name: "c", Usage: "challenge", Required: true}
	sFlag = &cli.StringFlag{Name: "s", Usage: "response", Required: true}
)

var proveFlags = []cli.Flag{
	configFlag, pFlag, gFlag, qFlag, secretFlag, generateKeyFlag,
	sessionsFlag, concurrencyFlag, trustedFlag, logLevelFlag,
}

func main() {
	err := newApp(os.Stdout, os.Stderr).Run(os.Args)
	switch {
	case err == nil:
	case errors.Is(err, errRejected):
		os.Exit(exitRejected)
	default:
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(exitFailure)
	}
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "schnorr-id",
		Version:   version,
		Usage:     "Schnorr identification: prove knowledge of a discrete logarithm",
		Writer:    out,
		ErrWriter: errOut,
		Flags:     proveFlags,
		Action:    proveAction,
		Commands: []*cli.Command{
			{
				Name:   "prove",
				Usage:  "run prover and verifier in-process and report the verdict",
				Flags:  proveFlags,
				Action: proveAction,
			},
			{
				Name:   "verify",
				Usage:  "check a transcript (t, c, s) against y",
				Flags:  []cli.Flag{configFlag, pFlag, gFlag, qFlag, trustedFlag, logLevelFlag, yFlag, tFlag, cFlag, sFlag},
				Action: verifyAction,
			},
		},
	}
}

// loadConfig starts from the defaults, applies --config and then any flag
// given explicitly on the command line.
func loadConfig(cctx *cli.Context) (*config.Config, error) {
	c := config.Default()
	if path := cctx.String(configFlag.Name); path != "" {
		var err error
		if c, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	for _, f := range []struct {
		flag *cli.StringFlag
		dst  **big.Int
	}{
		{pFlag, &c.P}, {gFlag, &c.G}, {qFlag, &c.Q}, {secretFlag, &c.Secret},
	} {
		if !cctx.IsSet(f.flag.Name) {
			continue
		}
		v, err := config.ParseInt(cctx.String(f.flag.Name))
		if err != nil {
			return nil, errors.Wrapf(err, "flag --%s", f.flag.Name)
		}
		*f.dst = v
	}
	if cctx.Bool(generateKeyFlag.Name) {
		c.Secret = nil
	}
	if cctx.IsSet(sessionsFlag.Name) {
		c.Sessions = cctx.Int(sessionsFlag.Name)
	}
	if cctx.IsSet(concurrencyFlag.Name) {
		c.Concurrency = cctx.Int(concurrencyFlag.Name)
	}
	if cctx.IsSet(trustedFlag.Name) {
		c.Trusted = cctx.Bool(trustedFlag.Name)
	}
	if cctx.IsSet(logLevelFlag.Name) {
		c.LogLevel = cctx.String(logLevelFlag.Name)
	}
	if err := c.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := common.SetLogLevel(c.LogLevel); err != nil {
		return nil, errors.Wrapf(err, "log level %q", c.LogLevel)
	}
	return c, nil
}

func proveAction(cctx *cli.Context) error {
	c, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	params, err := c.Parameters()
	if err != nil {
		return err
	}
	var key *schnorr.KeyPair
	if c.Secret == nil {
		key, err = schnorr.NewKeyPair(params, rand.Reader)
	} else {
		key, err = schnorr.NewKeyPairFromSecret(params, c.Secret)
	}
	if err != nil {
		return err
	}

	out := cctx.App.Writer
	fmt.Fprintf(out, "p = %s\ng = %s\nq = %s\ny = %s\n", params.P(), params.G(), params.Q(), key.PublicKey())

	results, err := protocol.RunSessions(cctx.Context, params, key, c.Sessions, c.Concurrency, rand.Reader)
	if err != nil {
		return err
	}
	rejected := 0
	for i, res := range results {
		verdict := "accepted"
		if !res.Accepted {
			verdict = "rejected"
			rejected++
		}
		fmt.Fprintf(out, "session %d: %s %s\n", i, res.Transcript, verdict)
	}
	if rejected > 0 {
		fmt.Fprintf(out, "proof rejected (%d of %d sessions)\n", rejected, len(results))
		return errRejected
	}
	fmt.Fprintln(out, "proof accepted")
	return nil
}

func verifyAction(cctx *cli.Context) error {
	c, err := loadConfig(cctx)
	if err != nil {
		return err
	}
	params, err := c.Parameters()
	if err != nil {
		return err
	}
	values := make(map[string]*big.Int, 4)
	for _, f := range []*cli.StringFlag{yFlag, tFlag, cFlag, sFlag} {
		v, err := config.ParseInt(cctx.String(f.Name))
		if err != nil {
			return errors.Wrapf(err, "flag --%s", f.Name)
		}
		values[f.Name] = v
	}
	out := cctx.App.Writer
	if !schnorr.Verify(params, values["y"], values["t"], values["c"], values["s"]) {
		fmt.Fprintln(out, "proof rejected")
		return errRejected
	}
	fmt.Fprintln(out, "proof accepted")
	return nil
}
