// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/blake2b"
)

func TestBlake2b(t *testing.T) {
	data := []byte("hello world")
	assert.Equal(t, Bytes32(blake2b.Sum256(data)), Blake2b(data))

	// multi-part input hashes the concatenation
	assert.Equal(t, Blake2b([]byte("hello world")), Blake2b([]byte("hello"), []byte(" "), []byte("world")))
}

func TestDeriveAddress(t *testing.T) {
	owner := BytesToAddress([]byte("NftStake"))

	a := DeriveAddress(owner, "reserve")
	b := DeriveAddress(owner, "reserve")
	c := DeriveAddress(owner, "other")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.False(t, a.IsZero())
}
