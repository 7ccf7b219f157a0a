// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

// ParseEventFilter exposes parseEventFilter to the external test package.
var ParseEventFilter = parseEventFilter
