// Package rpcsource implements the Transaction-input-source and State-source
// collaborators as a minimal hand-rolled JSON-RPC client over net/http,
// covering eth_getCode/eth_getStorageAt/eth_getBalance/eth_getTransactionCount
// plus eth_getBlockByNumber for full block transaction bodies.
package rpcsource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/selcukyildirim/argus-core/internal/argerr"
	"github.com/selcukyildirim/argus-core/internal/model"
)

// Client is a minimal JSON-RPC client against a single Ethereum endpoint.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewClient builds a Client against endpoint. An empty endpoint is rejected
// immediately as InvalidInput since every operation would fail anyway.
func NewClient(endpoint string) (*Client, error) {
	if strings.TrimSpace(endpoint) == "" {
		return nil, argerr.InvalidInputf("rpc endpoint must not be empty")
	}
	return &Client{Endpoint: endpoint, HTTPClient: http.DefaultClient}, nil
}

func blockTag(block uint64) string {
	return hexutil.EncodeUint64(block)
}

// GetBalance fetches the ether balance of addr at block.
func (c *Client) GetBalance(ctx context.Context, addr common.Address, block uint64) (*big.Int, error) {
	var result hexutil.Big
	if err := c.call(ctx, "eth_getBalance", []any{addr, blockTag(block)}, &result); err != nil {
		return nil, err
	}
	return (*big.Int)(&result), nil
}

// GetNonce fetches the account nonce of addr at block.
func (c *Client) GetNonce(ctx context.Context, addr common.Address, block uint64) (uint64, error) {
	var result hexutil.Uint64
	if err := c.call(ctx, "eth_getTransactionCount", []any{addr, blockTag(block)}, &result); err != nil {
		return 0, err
	}
	return uint64(result), nil
}

// GetCodeAt fetches the deployed code at addr at block.
func (c *Client) GetCodeAt(ctx context.Context, addr common.Address, block uint64) ([]byte, error) {
	var result hexutil.Bytes
	if err := c.call(ctx, "eth_getCode", []any{addr, blockTag(block)}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// GetStorageAt fetches a single storage slot of addr at block.
func (c *Client) GetStorageAt(ctx context.Context, addr common.Address, slot common.Hash, block uint64) (common.Hash, error) {
	var result string
	if err := c.call(ctx, "eth_getStorageAt", []any{addr, slot, blockTag(block)}, &result); err != nil {
		return common.Hash{}, err
	}
	return common.HexToHash(result), nil
}

// rpcBlockTx is the subset of eth_getBlockByNumber's transaction object this
// analyzer needs.
type rpcBlockTx struct {
	Hash  common.Hash     `json:"hash"`
	From  common.Address  `json:"from"`
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Value hexutil.Big     `json:"value"`
	Gas   hexutil.Uint64  `json:"gas"`
}

type rpcBlock struct {
	Transactions []rpcBlockTx `json:"transactions"`
}

// GetBlockTransactions fetches every transaction included in block.
func (c *Client) GetBlockTransactions(ctx context.Context, block uint64) ([]model.Transaction, error) {
	var result rpcBlock
	if err := c.call(ctx, "eth_getBlockByNumber", []any{blockTag(block), true}, &result); err != nil {
		return nil, err
	}

	txs := make([]model.Transaction, 0, len(result.Transactions))
	for _, t := range result.Transactions {
		txs = append(txs, model.Transaction{
			Hash:  t.Hash,
			From:  t.From,
			To:    t.To,
			Input: t.Input,
			Value: (*big.Int)(&t.Value),
			Gas:   uint64(t.Gas),
		})
	}
	return txs, nil
}

type rpcRequest struct {
	ID      int    `json:"id"`
	JSONRpc string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	ID      int             `json:"id"`
	JSONRpc string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Err     *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf(`{"code": %d, "message": %q}`, e.Code, e.Message)
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	payload := rpcRequest{ID: 1, JSONRpc: "2.0", Method: method, Params: params}

	data, err := json.Marshal(&payload)
	if err != nil {
		return argerr.Wrap(argerr.Internal, "rpc: marshal request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(data))
	if err != nil {
		return argerr.Wrap(argerr.Provider, "rpc: build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return argerr.Wrap(argerr.Provider, fmt.Sprintf("rpc: %s", method), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return argerr.Providerf("rpc: %s: 429 too many requests", method)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return argerr.Wrap(argerr.Provider, "rpc: read response", err)
	}

	var result rpcResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return argerr.Wrap(argerr.Provider, "rpc: decode response", err)
	}
	if result.Err != nil {
		return argerr.Wrap(argerr.Provider, fmt.Sprintf("rpc: %s", method), result.Err)
	}

	if out == nil || len(result.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Result, out); err != nil {
		return argerr.Wrap(argerr.Provider, fmt.Sprintf("rpc: unmarshal %s result", method), err)
	}
	return nil
}
