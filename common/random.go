// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"io"
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// GetRandomIntBelow returns an integer drawn uniformly from [0, lessThan) using
// bytes read from `rand`. Candidates are masked to the bit length of
// lessThan-1 and rejected until one falls in range, so the result is unbiased
// for any bound.
func GetRandomIntBelow(rand io.Reader, lessThan *big.Int) (*big.Int, error) {
	if rand == nil {
		return nil, errors.New("GetRandomIntBelow: nil randomness source")
	}
	if lessThan == nil || zero.Cmp(lessThan) != -1 {
		return nil, errors.New("GetRandomIntBelow: bound must be positive")
	}
	max := new(big.Int).Sub(lessThan, one)
	bitLen := max.BitLen()
	// bitLen == 0 means lessThan == 1; zero bytes are read and 0 is returned.
	k := (bitLen + 7) / 8
	b := uint(bitLen % 8)
	if b == 0 {
		b = 8
	}
	buf := make([]byte, k)
	n := new(big.Int)
	for {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return nil, errors.Wrap(err, "rand read failure in GetRandomIntBelow")
		}
		if k > 0 {
			buf[0] &= uint8(int(1<<b) - 1)
		}
		n.SetBytes(buf)
		if n.Cmp(lessThan) < 0 {
			return n, nil
		}
	}
}

// IsInRange reports whether lo <= v < hi. nil values are never in range.
func IsInRange(v, lo, hi *big.Int) bool {
	if v == nil || lo == nil || hi == nil {
		return false
	}
	return v.Cmp(lo) >= 0 && v.Cmp(hi) < 0
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

// NewLockedReader wraps `r` so that concurrent sessions can share it.
// Each Read is serialized, so no two callers ever observe the same bytes.
func NewLockedReader(r io.Reader) io.Reader {
	if lr, ok := r.(*lockedReader); ok {
		return lr
	}
	return &lockedReader{r: r}
}

func (lr *lockedReader) Read(p []byte) (int, error) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.r.Read(p)
}
