// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package httpclient provides an HTTP client to interact with an nftstake node.
// It offers methods to create and settle contracts and to read accounts,
// engine configuration and NFTs.
package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/vechain/nftstake/api/accounts"
	"github.com/vechain/nftstake/api/contracts"
	"github.com/vechain/nftstake/api/engine"
	"github.com/vechain/nftstake/api/nfts"
	"github.com/vechain/nftstake/api/node"
	"github.com/vechain/nftstake/builtin/nft"
	"github.com/vechain/nftstake/builtin/nftstake/clause"
	"github.com/vechain/nftstake/builtin/nftstake/contract"
	"github.com/vechain/nftstake/client/common"
	"github.com/vechain/nftstake/runtime"
	"github.com/vechain/nftstake/thor"
)

// Client represents the HTTP client for interacting with an nftstake node.
type Client struct {
	url string
	c   *http.Client
}

// New creates a new Client with the provided URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

// GetContract retrieves a contract and its runtime state at the head block.
func (c *Client) GetContract(id contract.ID) (*contracts.Contract, error) {
	body, err := c.httpGET(c.url + "/contracts/" + strconv.FormatUint(uint64(id), 10))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve contract - %w", err)
	}

	var res contracts.Contract
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal contract - %w", err)
	}
	return &res, nil
}

// CreateContract publishes a contract on behalf of caller.
func (c *Client) CreateContract(caller thor.Address, ct *contract.Contract) (*runtime.Receipt, error) {
	return c.execute("/contracts", &contracts.CreateRequest{Caller: caller, Contract: ct})
}

// AcceptContract stakes the given NFTs into a contract on behalf of caller.
func (c *Client) AcceptContract(caller thor.Address, id contract.ID, stakes, fees []nft.Address) (*runtime.Receipt, error) {
	return c.execute(contractPath(id, "accept"), &contracts.AcceptRequest{Caller: caller, Stakes: stakes, Fees: fees})
}

func (c *Client) CancelContract(caller thor.Address, id contract.ID) (*runtime.Receipt, error) {
	return c.execute(contractPath(id, "cancel"), &contracts.CallRequest{Caller: caller})
}

func (c *Client) ClaimContract(caller thor.Address, id contract.ID) (*runtime.Receipt, error) {
	return c.execute(contractPath(id, "claim"), &contracts.CallRequest{Caller: caller})
}

func (c *Client) SnipeContract(caller thor.Address, id contract.ID) (*runtime.Receipt, error) {
	return c.execute(contractPath(id, "snipe"), &contracts.CallRequest{Caller: caller})
}

// GetAccount retrieves balances, open contracts and statistics of addr.
func (c *Client) GetAccount(addr thor.Address) (*accounts.Account, error) {
	body, err := c.httpGET(c.url + "/accounts/" + addr.String())
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve account - %w", err)
	}

	var account accounts.Account
	if err = json.Unmarshal(body, &account); err != nil {
		return nil, fmt.Errorf("unable to unmarshal account - %w", err)
	}
	return &account, nil
}

// GetEngine retrieves the engine configuration.
func (c *Client) GetEngine() (*engine.Config, error) {
	body, err := c.httpGET(c.url + "/engine")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve engine config - %w", err)
	}

	var config engine.Config
	if err = json.Unmarshal(body, &config); err != nil {
		return nil, fmt.Errorf("unable to unmarshal engine config - %w", err)
	}
	return &config, nil
}

func (c *Client) SetCreator(caller, creator thor.Address) (*runtime.Receipt, error) {
	return c.execute("/engine/creator", &engine.SetCreatorRequest{Caller: caller, Creator: creator})
}

// SetContractCollection sets the contract collection, or creates one when collection is nil.
func (c *Client) SetContractCollection(caller thor.Address, collection *nft.CollectionID) (*runtime.Receipt, error) {
	return c.execute("/engine/collection", &engine.SetCollectionRequest{Caller: caller, Collection: collection})
}

func (c *Client) SetLocked(caller thor.Address, locked bool) (*runtime.Receipt, error) {
	return c.execute("/engine/locked", &engine.SetLockedRequest{Caller: caller, Locked: locked})
}

// GetCollection retrieves an NFT collection.
func (c *Client) GetCollection(id nft.CollectionID) (*nfts.Collection, error) {
	body, err := c.httpGET(c.url + "/nfts/" + strconv.FormatUint(uint64(id), 10))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve collection - %w", err)
	}

	var res nfts.Collection
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal collection - %w", err)
	}
	return &res, nil
}

// GetItem retrieves an NFT and its owner.
func (c *Client) GetItem(addr nft.Address) (*nfts.Item, error) {
	body, err := c.httpGET(c.url + itemPath(addr))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve item - %w", err)
	}

	var res nfts.Item
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal item - %w", err)
	}
	return &res, nil
}

// GetAttribute retrieves an item attribute in the given namespace.
func (c *Client) GetAttribute(addr nft.Address, ns clause.Namespace, key []byte) (*nfts.Attribute, error) {
	url := fmt.Sprintf("%s%s/attributes/0x%x?namespace=%s", c.url, itemPath(addr), key, ns)
	body, err := c.httpGET(url)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve attribute - %w", err)
	}

	var res nfts.Attribute
	if err = json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("unable to unmarshal attribute - %w", err)
	}
	return &res, nil
}

// GetHead retrieves the head block.
func (c *Client) GetHead() (*node.Head, error) {
	body, err := c.httpGET(c.url + "/node/head")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve head - %w", err)
	}

	var head node.Head
	if err = json.Unmarshal(body, &head); err != nil {
		return nil, fmt.Errorf("unable to unmarshal head - %w", err)
	}
	return &head, nil
}

// GetNodeInfo retrieves the node version and block interval.
func (c *Client) GetNodeInfo() (*node.Info, error) {
	body, err := c.httpGET(c.url + "/node/info")
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve node info - %w", err)
	}

	var info node.Info
	if err = json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("unable to unmarshal node info - %w", err)
	}
	return &info, nil
}

// RawHTTPPost sends a raw HTTP POST request to the specified URL with the provided data.
func (c *Client) RawHTTPPost(url string, calldata any) ([]byte, int, error) {
	var data []byte
	var err error

	if raw, ok := calldata.([]byte); ok {
		data = raw
	} else {
		data, err = json.Marshal(calldata)
		if err != nil {
			return nil, 0, fmt.Errorf("unable to marshal payload - %w", err)
		}
	}

	return c.rawHTTPRequest(http.MethodPost, c.url+url, bytes.NewBuffer(data))
}

// RawHTTPGet sends a raw HTTP GET request to the specified URL.
func (c *Client) RawHTTPGet(url string) ([]byte, int, error) {
	return c.rawHTTPRequest(http.MethodGet, c.url+url, nil)
}

func contractPath(id contract.ID, action string) string {
	return "/contracts/" + strconv.FormatUint(uint64(id), 10) + "/" + action
}

func itemPath(addr nft.Address) string {
	return fmt.Sprintf("/nfts/%d/%d", addr.Collection, addr.Item)
}

// execute posts a call. A reverted call fails with the revert message.
func (c *Client) execute(path string, payload any) (*runtime.Receipt, error) {
	body, err := c.httpPOST(c.url+path, payload)
	if err != nil {
		return nil, fmt.Errorf("unable to execute %s - %w", path, err)
	}

	var receipt runtime.Receipt
	if err = json.Unmarshal(body, &receipt); err != nil {
		return nil, fmt.Errorf("unable to unmarshal receipt - %w", err)
	}
	return &receipt, nil
}

func (c *Client) httpGET(url string) ([]byte, error) {
	return c.httpRequest(http.MethodGet, url, nil)
}

func (c *Client) httpPOST(url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to marshal payload - %w", err)
	}
	return c.httpRequest(http.MethodPost, url, bytes.NewBuffer(data))
}

func (c *Client) httpRequest(method, url string, payload io.Reader) ([]byte, error) {
	body, status, err := c.rawHTTPRequest(method, url, payload)
	if err != nil {
		return nil, err
	}
	switch status {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", status, bytes.TrimSpace(body), common.ErrNotFound)
	default:
		return nil, fmt.Errorf("http error - Status Code %d - %s - %w", status, bytes.TrimSpace(body), common.ErrNot200Status)
	}
}

func (c *Client) rawHTTPRequest(method, url string, payload io.Reader) ([]byte, int, error) {
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, 0, fmt.Errorf("error creating request: %w", err)
	}
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("error performing request: %w", err)
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("error reading response body: %w", err)
	}
	return responseBody, resp.StatusCode, nil
}
