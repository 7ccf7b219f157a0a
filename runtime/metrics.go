// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/vechain/nftstake/metrics"

var (
	metricReceipts        = metrics.LazyLoadCounterVec("runtime_receipts_count", []string{"status"})
	metricExecuteDuration = metrics.LazyLoadHistogram("runtime_execute_duration_us", metrics.BucketExecute)
	metricHead            = metrics.LazyLoadGauge("runtime_head_block")
)
