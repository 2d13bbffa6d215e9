// Copyright 2021-2024, Offchain Labs, Inc.
// For license information, see https://github.com/OffchainLabs/nitro/blob/master/LICENSE

package signverify

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/offchainlabs/txcircuit/util/containers"
)

type recoveryKey struct {
	hash common.Hash
	sig  [crypto.SignatureLength]byte
}

// RecoveryCache memoizes sender recovery, which dominates the cost of
// deriving sign data when the same transactions are proven repeatedly.
// Failed recoveries are not cached.
type RecoveryCache struct {
	mutex sync.Mutex
	cache *containers.LruCache[recoveryKey, SignData]
}

func NewRecoveryCache(size int) *RecoveryCache {
	return &RecoveryCache{
		cache: containers.NewLruCache[recoveryKey, SignData](size),
	}
}

func (c *RecoveryCache) Recover(msgHash common.Hash, sig []byte) (SignData, error) {
	if len(sig) != crypto.SignatureLength {
		return SignData{}, fmt.Errorf("%w: length %d", ErrInvalidSignature, len(sig))
	}
	key := recoveryKey{hash: msgHash}
	copy(key.sig[:], sig)

	c.mutex.Lock()
	data, ok := c.cache.Get(key)
	c.mutex.Unlock()
	if ok {
		return data, nil
	}

	data, err := Recover(msgHash, sig)
	if err != nil {
		return SignData{}, err
	}
	c.mutex.Lock()
	c.cache.Add(key, data)
	c.mutex.Unlock()
	return data, nil
}

func (c *RecoveryCache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.cache.Len()
}

// Clear drops every cached recovery, for instance when the chain id the
// transactions are checked against changes.
func (c *RecoveryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache.Clear()
}
