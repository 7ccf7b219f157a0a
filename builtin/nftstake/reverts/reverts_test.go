// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New(Staking, "lock not elapsed")
	assert.Equal(t, "lock not elapsed", revert.message)
	assert.Equal(t, "Staking: lock not elapsed", revert.Error())
	assert.Equal(t, "Inactive", New(Inactive, "").Error())

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_Is(t *testing.T) {
	wrapped := errors.Wrap(New(Claimable, ""), "cancel")

	assert.True(t, IsRevertErr(wrapped))
	assert.True(t, Is(wrapped, Claimable))
	assert.False(t, Is(wrapped, Staking))
	assert.False(t, Is(errors.New("Claimable"), Claimable))
	assert.Equal(t, Claimable, KindOf(wrapped))
	assert.Equal(t, Kind(""), KindOf(errors.New("other")))
}
