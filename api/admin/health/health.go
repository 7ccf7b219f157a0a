// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package health

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/vechain/nftstake/api/utils"
	"github.com/vechain/nftstake/runtime"
)

const delayBuffer = 5 * time.Second

type Status struct {
	Healthy     bool      `json:"healthy"`
	Head        uint32    `json:"head"`
	HeadTime    time.Time `json:"headTime"`
	Initialized bool      `json:"initialized"`
}

type API struct {
	rt            *runtime.Runtime
	blockInterval time.Duration
	now           func() time.Time
}

func New(rt *runtime.Runtime, blockInterval time.Duration) *API {
	return &API{rt: rt, blockInterval: blockInterval, now: time.Now}
}

// status is healthy when genesis is applied and the head moved within the last block interval.
func (h *API) status() (*Status, error) {
	initialized, err := h.rt.Initialized()
	if err != nil {
		return nil, err
	}
	head := h.rt.Head()
	headTime := time.Unix(int64(head.Time), 0)
	return &Status{
		Healthy:     initialized && h.now().Sub(headTime) <= h.blockInterval+delayBuffer,
		Head:        head.Number,
		HeadTime:    headTime,
		Initialized: initialized,
	}, nil
}

func (h *API) handleGetHealth(w http.ResponseWriter, _ *http.Request) error {
	status, err := h.status()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", utils.JSONContentType)
	if !status.Healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	return utils.WriteJSON(w, status)
}

func (h *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("health").
		HandlerFunc(utils.WrapHandlerFunc(h.handleGetHealth))
}
