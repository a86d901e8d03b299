package scanner

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	irpc "github.com/goran-ethernal/CoinFeed/internal/rpc"
	itypes "github.com/goran-ethernal/CoinFeed/internal/types"
	"github.com/goran-ethernal/CoinFeed/pkg/coin"
	pkgrpc "github.com/goran-ethernal/CoinFeed/pkg/rpc"
)

// Config holds the scanner configuration.
type Config struct {
	// Factory is the coin factory contract emitting CoinCreated.
	Factory common.Address
	// Referrer is the platform referrer every scanned event must carry.
	Referrer common.Address
	// WindowSize is the block offset between the start and the end of a window.
	WindowSize uint64
	// WindowTimeout bounds a single window query. Zero means no additional bound.
	WindowTimeout time.Duration
	// Finality selects the head block tag.
	Finality itypes.BlockFinality
}

// Window is an inclusive block range queried in one log call.
type Window struct {
	From uint64
	To   uint64
}

// Windows partitions [from, to] into ascending inclusive windows [f, min(f+size, to)].
// It returns nil when from > to.
func Windows(from, to, size uint64) []Window {
	if from > to {
		return nil
	}

	var windows []Window
	for start := from; ; {
		end := to
		if size < to-start {
			end = start + size
		}

		windows = append(windows, Window{From: start, To: end})

		if end == to {
			return windows
		}
		start = end + 1
	}
}

// Result is the outcome of a scan over a block range.
type Result struct {
	// Records are the decoded logs in non-decreasing block order.
	Records []coin.LogRecord
	// Windows is the number of windows queried.
	Windows int
	// Failed holds one error per window whose query failed.
	Failed []*coin.WindowError
}

// Scanner queries CoinCreated logs window by window.
type Scanner struct {
	rpc pkgrpc.ChainReader
	cfg Config
	log *logger.Logger
}

// New creates a new Scanner.
func New(client pkgrpc.ChainReader, cfg Config, log *logger.Logger) *Scanner {
	if cfg.Finality == "" {
		cfg.Finality = itypes.FinalityLatest
	}

	return &Scanner{
		rpc: client,
		cfg: cfg,
		log: log,
	}
}

// Head returns the current head block number according to the configured finality.
// Any failure is reported as a *coin.ChainUnavailableError.
func (s *Scanner) Head(ctx context.Context) (uint64, error) {
	var (
		header *types.Header
		err    error
	)

	switch s.cfg.Finality {
	case itypes.FinalityFinalized:
		header, err = s.rpc.GetFinalizedBlockHeader(ctx)
	case itypes.FinalitySafe:
		header, err = s.rpc.GetSafeBlockHeader(ctx)
	case itypes.FinalityLatest:
		header, err = s.rpc.GetLatestBlockHeader(ctx)
	default:
		err = fmt.Errorf("invalid finality mode: %s", s.cfg.Finality)
	}

	if err != nil {
		return 0, &coin.ChainUnavailableError{Err: err}
	}
	if header == nil || header.Number == nil {
		return 0, &coin.ChainUnavailableError{Err: errors.New("node returned an empty header")}
	}

	head := header.Number.Uint64()
	headBlock.Set(float64(head))

	return head, nil
}

// Scan queries every window of [from, to] once, in ascending order.
// A failed window is recorded in the result and skipped. Only context
// cancellation aborts the scan.
func (s *Scanner) Scan(ctx context.Context, from, to uint64) (*Result, error) {
	windows := Windows(from, to, s.cfg.WindowSize)
	result := &Result{Windows: len(windows)}

	for i, w := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		windowsQueried.Inc()

		logs, err := s.queryWindow(ctx, w)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}

			windowsFailed.Inc()
			werr := &coin.WindowError{FromBlock: w.From, ToBlock: w.To, Err: err}
			result.Failed = append(result.Failed, werr)
			s.log.Warnw("window query failed, skipping",
				"window", i+1,
				"windows", len(windows),
				"from_block", w.From,
				"to_block", w.To,
				"error", err,
			)
			continue
		}

		for _, l := range logs {
			rec, err := DecodeCoinCreated(l)
			if err != nil {
				logsDecoded.WithLabelValues("rejected").Inc()
				s.log.Warnw("skipping undecodable log",
					"block", l.BlockNumber,
					"tx", l.TxHash.Hex(),
					"index", l.Index,
					"error", err,
				)
				continue
			}
			logsDecoded.WithLabelValues("decoded").Inc()
			result.Records = append(result.Records, rec)
		}

		s.log.Debugw("window scanned",
			"from_block", w.From,
			"to_block", w.To,
			"logs", len(logs),
		)
	}

	sort.SliceStable(result.Records, func(i, j int) bool {
		a, b := result.Records[i], result.Records[j]
		if a.BlockNumber != b.BlockNumber {
			return a.BlockNumber < b.BlockNumber
		}
		return a.LogIndex < b.LogIndex
	})

	return result, nil
}

// queryWindow fetches a window, bounded by the window timeout.
func (s *Scanner) queryWindow(ctx context.Context, w Window) ([]types.Log, error) {
	if s.cfg.WindowTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.WindowTimeout)
		defer cancel()
	}

	return s.fetchLogs(ctx, w.From, w.To)
}

// fetchLogs queries logs for [fromBlock, toBlock]. When the provider reports too many
// results the range is split (at the suggested block when usable, otherwise in half)
// and both halves are fetched so the whole range stays covered.
func (s *Scanner) fetchLogs(ctx context.Context, fromBlock, toBlock uint64) ([]types.Log, error) {
	logs, err := s.rpc.GetLogs(ctx, s.filter(fromBlock, toBlock))
	if err == nil {
		return logs, nil
	}

	limit, ok := irpc.AsLogLimit(err)
	if !ok {
		return nil, err
	}

	if fromBlock == toBlock {
		return nil, fmt.Errorf("cannot split range further, single block %d has too many logs", fromBlock)
	}

	// split point is the last block of the first half
	const splitBy = 2
	split := fromBlock + (toBlock-fromBlock)/splitBy
	if limit.Suggested && limit.From == fromBlock && limit.To < toBlock {
		split = limit.To
	}

	windowSplits.Inc()
	s.log.Infof("too many logs in range %d to %d, splitting at block %d", fromBlock, toBlock, split)

	first, err := s.fetchLogs(ctx, fromBlock, split)
	if err != nil {
		return nil, err
	}

	second, err := s.fetchLogs(ctx, split+1, toBlock)
	if err != nil {
		return nil, err
	}

	return append(first, second...), nil
}

func (s *Scanner) filter(fromBlock, toBlock uint64) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   new(big.Int).SetUint64(toBlock),
		Addresses: []common.Address{s.cfg.Factory},
		Topics: [][]common.Hash{
			{CoinCreatedTopic},
			nil,
			nil,
			{common.BytesToHash(s.cfg.Referrer.Bytes())},
		},
	}
}
