// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages the contract storage of built-in contracts.
// It follows the flow as bellow:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ playback(staging) ] -> [ kv batch ]
//	         |
//	  [ storage cache ]
//	         |
//	  [ committed kv ]
//
// Every call runs on its own State. Checkpoints taken with NewCheckpoint can be
// reverted with RevertTo, nothing reaches the kv store before Stage().Commit().
package state
