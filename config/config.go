// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package config holds the demonstration settings: the domain parameters, an
// optional fixed secret and how many sessions to run. Settings are read from
// TOML and may be overridden field by field.
package config

import (
	"io"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/bnb-chain/schnorr-id/crypto/group"
)

const (
	DefaultSessions    = 1
	DefaultConcurrency = 1
	DefaultLogLevel    = "info"
)

type (
	Config struct {
		P,
		G,
		Q *big.Int
		// Secret is nil when a fresh key pair should be generated.
		Secret      *big.Int
		Sessions    int
		Concurrency int
		// Trusted skips the primality and group order checks on (P, G, Q).
		Trusted  bool
		LogLevel string
	}

	// ConfigTOML is the TOML-able version of Config. Integers are strings
	// parsed with base prefixes, so "0x17" and "23" are the same value. An
	// empty secret asks for a generated key pair.
	ConfigTOML struct {
		P           string `toml:"p"`
		G           string `toml:"g"`
		Q           string `toml:"q"`
		Secret      string `toml:"secret"`
		Sessions    int    `toml:"sessions"`
		Concurrency int    `toml:"concurrency"`
		Trusted     bool   `toml:"trusted"`
		LogLevel    string `toml:"log_level"`
	}
)

// Default returns the demonstration group p = 23, q = 11, g = 4 (the subgroup
// of quadratic residues mod 23) with secret 6.
func Default() *Config {
	return &Config{
		P:           big.NewInt(23),
		G:           big.NewInt(4),
		Q:           big.NewInt(11),
		Secret:      big.NewInt(6),
		Sessions:    DefaultSessions,
		Concurrency: DefaultConcurrency,
		LogLevel:    DefaultLogLevel,
	}
}

// Load reads a TOML file on top of Default.
func Load(path string) (*Config, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "config: cannot open")
	}
	defer fd.Close()
	c, err := Decode(fd)
	if err != nil {
		return nil, errors.Wrapf(err, "config: %s", path)
	}
	return c, nil
}

// Decode reads TOML from r on top of Default. Keys absent from the input keep
// their default value.
func Decode(r io.Reader) (*Config, error) {
	ctoml := &ConfigTOML{}
	md, err := toml.NewDecoder(r).Decode(ctoml)
	if err != nil {
		return nil, errors.Wrap(err, "config: invalid TOML")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("config: unknown key %q", undecoded[0].String())
	}
	c := Default()
	set := func(key, value string, dst **big.Int) error {
		if !md.IsDefined(key) {
			return nil
		}
		v, err := ParseInt(value)
		if err != nil {
			return errors.Wrapf(err, "config: key %q", key)
		}
		*dst = v
		return nil
	}
	if err = set("p", ctoml.P, &c.P); err != nil {
		return nil, err
	}
	if err = set("g", ctoml.G, &c.G); err != nil {
		return nil, err
	}
	if err = set("q", ctoml.Q, &c.Q); err != nil {
		return nil, err
	}
	if md.IsDefined("secret") {
		if ctoml.Secret == "" {
			c.Secret = nil
		} else if err = set("secret", ctoml.Secret, &c.Secret); err != nil {
			return nil, err
		}
	}
	if md.IsDefined("sessions") {
		c.Sessions = ctoml.Sessions
	}
	if md.IsDefined("concurrency") {
		c.Concurrency = ctoml.Concurrency
	}
	if md.IsDefined("trusted") {
		c.Trusted = ctoml.Trusted
	}
	if md.IsDefined("log_level") {
		c.LogLevel = ctoml.LogLevel
	}
	if err = c.ValidateBasic(); err != nil {
		return nil, err
	}
	return c, nil
}

// TOML returns a struct that can be marshalled using a TOML-encoding library.
func (c *Config) TOML() interface{} {
	ctoml := &ConfigTOML{
		P:           c.P.String(),
		G:           c.G.String(),
		Q:           c.Q.String(),
		Sessions:    c.Sessions,
		Concurrency: c.Concurrency,
		Trusted:     c.Trusted,
		LogLevel:    c.LogLevel,
	}
	if c.Secret != nil {
		ctoml.Secret = c.Secret.String()
	}
	return ctoml
}

// Save writes c as TOML to w.
func (c *Config) Save(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c.TOML())
}

// ValidateBasic checks the settings that do not depend on the group.
func (c *Config) ValidateBasic() error {
	if c.Sessions < 1 {
		return errors.Errorf("config: sessions must be >= 1, got %d", c.Sessions)
	}
	if c.Concurrency < 1 {
		return errors.Errorf("config: concurrency must be >= 1, got %d", c.Concurrency)
	}
	return nil
}

// Parameters builds the domain parameters, validating them fully unless the
// configuration marks them trusted.
func (c *Config) Parameters() (*group.Parameters, error) {
	if c.Trusted {
		return group.NewTrustedParameters(c.P, c.G, c.Q)
	}
	return group.NewParameters(c.P, c.G, c.Q)
}

// ParseInt parses a decimal integer, or a hex/octal/binary one with a
// 0x/0o/0b prefix.
func ParseInt(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, errors.Errorf("cannot parse %q as an integer", s)
	}
	return v, nil
}
