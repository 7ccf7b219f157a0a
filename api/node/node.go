// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/runtime"
)

// Info describes the running node.
type Info struct {
	Version       string `json:"version"`
	BlockInterval uint64 `json:"blockInterval"`
}

// Head is the current block.
type Head struct {
	Number    uint32 `json:"number"`
	Timestamp uint64 `json:"timestamp"`
}

type Node struct {
	rt   *runtime.Runtime
	info Info
}

func New(rt *runtime.Runtime, info Info) *Node {
	return &Node{
		rt,
		info,
	}
}

func (n *Node) handleHead(w http.ResponseWriter, _ *http.Request) error {
	head := n.rt.Head()
	return utils.WriteJSON(w, &Head{Number: head.Number, Timestamp: head.Time})
}

func (n *Node) handleNodeInfo(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, n.info)
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/head").
		Methods(http.MethodGet).
		Name("GET /node/head").
		HandlerFunc(utils.WrapHandlerFunc(n.handleHead))
	sub.Path("/info").
		Methods(http.MethodGet).
		Name("GET /node/info").
		HandlerFunc(utils.WrapHandlerFunc(n.handleNodeInfo))
}
