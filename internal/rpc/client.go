package rpc

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/goran-ethernal/CoinFeed/internal/retry"
	"github.com/goran-ethernal/CoinFeed/pkg/config"
	pkgrpc "github.com/goran-ethernal/CoinFeed/pkg/rpc"
)

// Compile-time check to ensure Client implements pkgrpc.ChainReader interface.
var _ pkgrpc.ChainReader = (*Client)(nil)

// Client wraps the Ethereum RPC client with retries and request metrics.
// It implements the pkgrpc.ChainReader interface.
type Client struct {
	eth    *ethclient.Client
	rpc    *rpc.Client
	policy retry.Policy
}

// NewClient creates a new RPC client connected to the given endpoint.
// A nil retryCfg makes every call a single attempt.
func NewClient(ctx context.Context, endpoint string, retryCfg *config.RetryConfig) (*Client, error) {
	rpcClient, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return &Client{
		eth:    ethclient.NewClient(rpcClient),
		rpc:    rpcClient,
		policy: retry.FromConfig(retryCfg, retry.DefaultJitter),
	}, nil
}

// Close closes the RPC client connection.
func (c *Client) Close() {
	c.eth.Close()
}

// GetLogs retrieves logs matching the given filter query.
func (c *Client) GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error) {
	var logs []types.Log
	err := c.call(ctx, "eth_getLogs", func(ctx context.Context) error {
		logs = nil
		return c.rpc.CallContext(ctx, &logs, "eth_getLogs", toFilterArg(query))
	})
	if err != nil {
		return nil, err
	}

	return logs, nil
}

// GetLatestBlockHeader retrieves the latest block header.
func (c *Client) GetLatestBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, nil)
}

// GetFinalizedBlockHeader retrieves the finalized block header.
func (c *Client) GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, big.NewInt(int64(rpc.FinalizedBlockNumber)))
}

// GetSafeBlockHeader retrieves the safe block header.
func (c *Client) GetSafeBlockHeader(ctx context.Context) (*types.Header, error) {
	return c.headerByNumber(ctx, big.NewInt(int64(rpc.SafeBlockNumber)))
}

func (c *Client) headerByNumber(ctx context.Context, number *big.Int) (*types.Header, error) {
	var header *types.Header
	err := c.call(ctx, "eth_getBlockByNumber", func(ctx context.Context) error {
		h, err := c.eth.HeaderByNumber(ctx, number)
		if err != nil {
			return err
		}
		header = h
		return nil
	})
	if err != nil {
		return nil, err
	}

	return header, nil
}

// call runs a single RPC method under the retry policy and records metrics for every attempt.
func (c *Client) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	return retry.Do(ctx, c.policy, method, retry.Transient, func(int) error {
		start := time.Now()
		err := fn(ctx)
		observeAttempt(method, start, err)
		return err
	})
}

func errorKind(err error) string {
	if _, ok := AsLogLimit(err); ok {
		return "too_many_results"
	}
	if retry.Transient(err) {
		return "transient"
	}
	return "other"
}

// toFilterArg converts ethereum.FilterQuery to the format expected by eth_getLogs.
func toFilterArg(q ethereum.FilterQuery) any {
	arg := map[string]any{
		"topics": q.Topics,
	}

	if q.BlockHash != nil {
		arg["blockHash"] = *q.BlockHash
	} else {
		if q.FromBlock != nil {
			arg["fromBlock"] = toBlockNumArg(q.FromBlock.Uint64())
		}
		if q.ToBlock != nil {
			arg["toBlock"] = toBlockNumArg(q.ToBlock.Uint64())
		}
	}

	if len(q.Addresses) > 0 {
		if len(q.Addresses) == 1 {
			arg["address"] = q.Addresses[0]
		} else {
			arg["address"] = q.Addresses
		}
	}

	return arg
}

// toBlockNumArg converts a block number to hex format.
func toBlockNumArg(blockNum uint64) string {
	return fmt.Sprintf("0x%x", blockNum)
}
