package rpc

import (
	"context"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
)

// ChainReader is the node surface the scanner needs: log queries bounded by
// a head block picked at one of the three finality levels.
type ChainReader interface {
	Close()

	// GetLogs returns the logs matching query.
	GetLogs(ctx context.Context, query ethereum.FilterQuery) ([]types.Log, error)

	GetLatestBlockHeader(ctx context.Context) (*types.Header, error)
	GetSafeBlockHeader(ctx context.Context) (*types.Header, error)
	GetFinalizedBlockHeader(ctx context.Context) (*types.Header, error)
}
