// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nftstake

import "github.com/vechain/nftstake/metrics"

var (
	metricCalls     = metrics.LazyLoadCounterVec("nftstake_calls_count", []string{"op", "result"})
	metricSettled   = metrics.LazyLoadCounterVec("nftstake_settled_count", []string{"path"})
	metricContracts = metrics.LazyLoadCounter("nftstake_contracts_count")
)
