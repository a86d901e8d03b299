package scanner

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/CoinFeed/internal/logger"
	rpcmocks "github.com/goran-ethernal/CoinFeed/internal/rpc/mocks"
	itypes "github.com/goran-ethernal/CoinFeed/internal/types"
	"github.com/goran-ethernal/CoinFeed/pkg/coin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	testFactory  = common.HexToAddress("0x777777751622c0d3258f214F9DF38E35BF45baF3")
	testReferrer = common.HexToAddress("0x79166ff20D3C3497e74dcd9A2f6C5a5a2B3F1A9E")
	testCreator  = common.HexToAddress("0x00000000000000000000000000000000000c0ffe")
	testPayout   = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	testCurrency = common.HexToAddress("0x4200000000000000000000000000000000000006")
	testPool     = common.HexToAddress("0x0000000000000000000000000000000000000b01")
)

// tooManyResultsError mimics the provider's rpc.DataError
type tooManyResultsError struct {
	data string
}

func (e *tooManyResultsError) Error() string  { return "query returned more than 10000 results" }
func (e *tooManyResultsError) ErrorData() any { return e.data }

func coinCreatedLog(t *testing.T, block uint64, index uint, coinAddr common.Address, uri string) types.Log {
	t.Helper()

	data, err := CoinCreatedEvent.Inputs.NonIndexed().Pack(
		testCurrency, uri, "Song", "SONG", coinAddr, testPool, "v1",
	)
	require.NoError(t, err)

	return types.Log{
		Address: testFactory,
		Topics: []common.Hash{
			CoinCreatedTopic,
			common.BytesToHash(testCreator.Bytes()),
			common.BytesToHash(testPayout.Bytes()),
			common.BytesToHash(testReferrer.Bytes()),
		},
		Data:        data,
		BlockNumber: block,
		TxHash:      common.BigToHash(new(big.Int).SetUint64(block*1000 + uint64(index))),
		Index:       index,
	}
}

func rangeQuery(from, to uint64) any {
	return mock.MatchedBy(func(q ethereum.FilterQuery) bool {
		return q.FromBlock.Uint64() == from && q.ToBlock.Uint64() == to
	})
}

func setupScanner(t *testing.T, windowSize uint64) (*Scanner, *rpcmocks.ChainReader) {
	t.Helper()

	client := rpcmocks.NewChainReader(t)
	s := New(client, Config{
		Factory:    testFactory,
		Referrer:   testReferrer,
		WindowSize: windowSize,
	}, logger.NewNopLogger())

	return s, client
}

func TestWindows(t *testing.T) {
	tests := []struct {
		name     string
		from, to uint64
		size     uint64
		expected []Window
	}{
		{
			name: "two windows",
			from: 1000, to: 2900, size: 950,
			expected: []Window{{From: 1000, To: 1950}, {From: 1951, To: 2900}},
		},
		{
			name: "single block range",
			from: 5, to: 5, size: 1000,
			expected: []Window{{From: 5, To: 5}},
		},
		{
			name: "range smaller than window",
			from: 10, to: 20, size: 1000,
			expected: []Window{{From: 10, To: 20}},
		},
		{
			name: "exact multiple",
			from: 0, to: 9, size: 4,
			expected: []Window{{From: 0, To: 4}, {From: 5, To: 9}},
		},
		{
			name: "last window shorter",
			from: 0, to: 10, size: 4,
			expected: []Window{{From: 0, To: 4}, {From: 5, To: 9}, {From: 10, To: 10}},
		},
		{
			name: "zero size yields single block windows",
			from: 7, to: 9, size: 0,
			expected: []Window{{From: 7, To: 7}, {From: 8, To: 8}, {From: 9, To: 9}},
		},
		{
			name: "start after head",
			from: 3000, to: 2900, size: 950,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Windows(tt.from, tt.to, tt.size))
		})
	}
}

func TestDecodeCoinCreated(t *testing.T) {
	coinAddr := common.HexToAddress("0xabc")
	l := coinCreatedLog(t, 1005, 3, coinAddr, "ipfs://bafkreimeta")

	rec, err := DecodeCoinCreated(l)
	require.NoError(t, err)

	require.Equal(t, uint64(1005), rec.BlockNumber)
	require.Equal(t, uint(3), rec.LogIndex)
	require.Equal(t, l.TxHash, rec.TxHash)
	require.Equal(t, testCreator, rec.Caller)
	require.Equal(t, testPayout, rec.PayoutRecipient)
	require.Equal(t, testReferrer, rec.PlatformReferrer)
	require.Equal(t, testCurrency, rec.Currency)
	require.Equal(t, "ipfs://bafkreimeta", rec.URI)
	require.Equal(t, "Song", rec.Name)
	require.Equal(t, "SONG", rec.Symbol)
	require.Equal(t, coinAddr, rec.Coin)
	require.Equal(t, testPool, rec.Pool)
	require.Equal(t, "v1", rec.Version)
}

func TestDecodeCoinCreated_Rejects(t *testing.T) {
	valid := coinCreatedLog(t, 1, 0, common.HexToAddress("0x1"), "ipfs://x")

	wrongTopic := valid
	wrongTopic.Topics = append([]common.Hash{common.HexToHash("0xdead")}, valid.Topics[1:]...)

	missingTopic := valid
	missingTopic.Topics = valid.Topics[:3]

	badData := valid
	badData.Data = []byte{0x01, 0x02}

	_, err := DecodeCoinCreated(wrongTopic)
	require.ErrorIs(t, err, ErrNotCoinCreated)

	_, err = DecodeCoinCreated(missingTopic)
	require.ErrorIs(t, err, ErrNotCoinCreated)

	_, err = DecodeCoinCreated(badData)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to unpack")
}

func TestCoinCreatedTopic(t *testing.T) {
	require.Equal(t,
		"CoinCreated(address,address,address,address,string,string,string,address,address,string)",
		CoinCreatedEvent.Sig,
	)
	require.NotEqual(t, common.Hash{}, CoinCreatedTopic)
}

func TestScanner_Head(t *testing.T) {
	header := &types.Header{Number: big.NewInt(2900)}

	tests := []struct {
		name     string
		finality itypes.BlockFinality
		setup    func(m *rpcmocks.ChainReader)
	}{
		{
			name:     "latest",
			finality: itypes.FinalityLatest,
			setup: func(m *rpcmocks.ChainReader) {
				m.EXPECT().GetLatestBlockHeader(mock.Anything).Return(header, nil).Once()
			},
		},
		{
			name:     "safe",
			finality: itypes.FinalitySafe,
			setup: func(m *rpcmocks.ChainReader) {
				m.EXPECT().GetSafeBlockHeader(mock.Anything).Return(header, nil).Once()
			},
		},
		{
			name:     "finalized",
			finality: itypes.FinalityFinalized,
			setup: func(m *rpcmocks.ChainReader) {
				m.EXPECT().GetFinalizedBlockHeader(mock.Anything).Return(header, nil).Once()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := rpcmocks.NewChainReader(t)
			tt.setup(client)

			s := New(client, Config{WindowSize: 10, Finality: tt.finality}, logger.NewNopLogger())
			head, err := s.Head(context.Background())
			require.NoError(t, err)
			require.Equal(t, uint64(2900), head)
		})
	}
}

func TestScanner_HeadFailureIsChainUnavailable(t *testing.T) {
	s, client := setupScanner(t, 10)
	cause := errors.New("dial tcp: connection refused")
	client.EXPECT().GetLatestBlockHeader(mock.Anything).Return(nil, cause).Once()

	_, err := s.Head(context.Background())
	require.ErrorIs(t, err, coin.ErrChainUnavailable)
	require.ErrorIs(t, err, cause)
}

func TestScanner_HeadEmptyHeader(t *testing.T) {
	s, client := setupScanner(t, 10)
	client.EXPECT().GetLatestBlockHeader(mock.Anything).Return(&types.Header{}, nil).Once()

	_, err := s.Head(context.Background())
	require.ErrorIs(t, err, coin.ErrChainUnavailable)
}

func TestScanner_ScanFilter(t *testing.T) {
	s, client := setupScanner(t, 100)

	client.EXPECT().GetLogs(mock.Anything, mock.Anything).
		Run(func(_ context.Context, q ethereum.FilterQuery) {
			require.Equal(t, []common.Address{testFactory}, q.Addresses)
			require.Len(t, q.Topics, 4)
			require.Equal(t, []common.Hash{CoinCreatedTopic}, q.Topics[0])
			require.Nil(t, q.Topics[1])
			require.Nil(t, q.Topics[2])
			require.Equal(t, []common.Hash{common.BytesToHash(testReferrer.Bytes())}, q.Topics[3])
		}).
		Return(nil, nil).Once()

	result, err := s.Scan(context.Background(), 10, 50)
	require.NoError(t, err)
	require.Equal(t, 1, result.Windows)
	require.Empty(t, result.Records)
	require.Empty(t, result.Failed)
}

func TestScanner_ScanPartialWindowFailure(t *testing.T) {
	s, client := setupScanner(t, 950)

	first := []types.Log{
		coinCreatedLog(t, 1005, 0, common.HexToAddress("0xabc"), "ipfs://a"),
		coinCreatedLog(t, 1500, 1, common.HexToAddress("0xdef"), "ipfs://b"),
	}
	client.EXPECT().GetLogs(mock.Anything, rangeQuery(1000, 1950)).Return(first, nil).Once()
	client.EXPECT().GetLogs(mock.Anything, rangeQuery(1951, 2900)).Return(nil, errors.New("502 bad gateway")).Once()

	result, err := s.Scan(context.Background(), 1000, 2900)
	require.NoError(t, err)
	require.Equal(t, 2, result.Windows)
	require.Len(t, result.Records, 2)
	require.Equal(t, common.HexToAddress("0xabc"), result.Records[0].Coin)
	require.Equal(t, common.HexToAddress("0xdef"), result.Records[1].Coin)

	require.Len(t, result.Failed, 1)
	require.Equal(t, uint64(1951), result.Failed[0].FromBlock)
	require.Equal(t, uint64(2900), result.Failed[0].ToBlock)
	require.ErrorIs(t, result.Failed[0], coin.ErrWindowQueryFailed)
}

func TestScanner_ScanOrdersRecords(t *testing.T) {
	s, client := setupScanner(t, 100)

	logs := []types.Log{
		coinCreatedLog(t, 30, 2, common.HexToAddress("0x3"), "ipfs://c"),
		coinCreatedLog(t, 10, 5, common.HexToAddress("0x2"), "ipfs://b"),
		coinCreatedLog(t, 10, 1, common.HexToAddress("0x1"), "ipfs://a"),
	}
	client.EXPECT().GetLogs(mock.Anything, rangeQuery(0, 100)).Return(logs, nil).Once()

	result, err := s.Scan(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, result.Records, 3)
	require.Equal(t, common.HexToAddress("0x1"), result.Records[0].Coin)
	require.Equal(t, common.HexToAddress("0x2"), result.Records[1].Coin)
	require.Equal(t, common.HexToAddress("0x3"), result.Records[2].Coin)
}

func TestScanner_ScanSkipsUndecodableLogs(t *testing.T) {
	s, client := setupScanner(t, 100)

	bad := coinCreatedLog(t, 20, 0, common.HexToAddress("0x2"), "ipfs://b")
	bad.Data = []byte{0xff}

	logs := []types.Log{
		coinCreatedLog(t, 10, 0, common.HexToAddress("0x1"), "ipfs://a"),
		bad,
	}
	client.EXPECT().GetLogs(mock.Anything, mock.Anything).Return(logs, nil).Once()

	result, err := s.Scan(context.Background(), 0, 50)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	require.Equal(t, common.HexToAddress("0x1"), result.Records[0].Coin)
}

func TestScanner_ScanSplitsOnTooManyResults(t *testing.T) {
	s, client := setupScanner(t, 1000)

	tooMany := &tooManyResultsError{
		data: "Query returned more than 10000 results. Try with this block range [0x0, 0x3].",
	}

	client.EXPECT().GetLogs(mock.Anything, rangeQuery(0, 10)).Return(nil, tooMany).Once()
	client.EXPECT().GetLogs(mock.Anything, rangeQuery(0, 3)).
		Return([]types.Log{coinCreatedLog(t, 2, 0, common.HexToAddress("0x1"), "ipfs://a")}, nil).Once()
	client.EXPECT().GetLogs(mock.Anything, rangeQuery(4, 10)).
		Return([]types.Log{coinCreatedLog(t, 9, 0, common.HexToAddress("0x2"), "ipfs://b")}, nil).Once()

	result, err := s.Scan(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Empty(t, result.Failed)
	require.Len(t, result.Records, 2)
	require.Equal(t, uint64(2), result.Records[0].BlockNumber)
	require.Equal(t, uint64(9), result.Records[1].BlockNumber)
}

func TestScanner_ScanSplitsInHalfWithoutSuggestion(t *testing.T) {
	s, client := setupScanner(t, 1000)

	tooMany := &tooManyResultsError{data: "Query returned more than 10000 results."}

	client.EXPECT().GetLogs(mock.Anything, rangeQuery(0, 9)).Return(nil, tooMany).Once()
	client.EXPECT().GetLogs(mock.Anything, rangeQuery(0, 4)).Return(nil, nil).Once()
	client.EXPECT().GetLogs(mock.Anything, rangeQuery(5, 9)).Return(nil, nil).Once()

	result, err := s.Scan(context.Background(), 0, 9)
	require.NoError(t, err)
	require.Empty(t, result.Failed)
}

func TestScanner_ScanSingleBlockTooManyFailsWindow(t *testing.T) {
	s, client := setupScanner(t, 1000)

	tooMany := &tooManyResultsError{data: "Query returned more than 10000 results."}
	client.EXPECT().GetLogs(mock.Anything, rangeQuery(7, 7)).Return(nil, tooMany).Once()

	result, err := s.Scan(context.Background(), 7, 7)
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	require.Contains(t, result.Failed[0].Error(), "cannot split range further")
}

func TestScanner_ScanWindowTimeout(t *testing.T) {
	client := rpcmocks.NewChainReader(t)
	s := New(client, Config{WindowSize: 1000, WindowTimeout: 10 * time.Millisecond}, logger.NewNopLogger())

	client.EXPECT().GetLogs(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ ethereum.FilterQuery) ([]types.Log, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()

	result, err := s.Scan(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, result.Failed, 1)
	require.ErrorIs(t, result.Failed[0], context.DeadlineExceeded)
}

func TestScanner_ScanContextCancelled(t *testing.T) {
	s, _ := setupScanner(t, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Scan(ctx, 0, 100)
	require.ErrorIs(t, err, context.Canceled)
}

func TestScanner_ScanEmptyRange(t *testing.T) {
	s, _ := setupScanner(t, 10)

	result, err := s.Scan(context.Background(), 3000, 2900)
	require.NoError(t, err)
	require.Zero(t, result.Windows)
	require.Empty(t, result.Records)
}
