// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/nftstake/runtime"
)

// produceBlocks advances the head block once per interval until ctx is done.
func produceBlocks(ctx context.Context, rt *runtime.Runtime, interval time.Duration) error {
	if interval <= 0 {
		return errors.New("block interval must be positive")
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			head, err := rt.Advance(now)
			if err != nil {
				return errors.Wrap(err, "advance head")
			}
			logger.Debug("new block", "number", head.Number)
		}
	}
}
