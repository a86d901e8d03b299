package scanner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/goran-ethernal/CoinFeed/pkg/coin"
)

// coinFactoryABI holds the CoinCreated event emitted by the coin factory.
const coinFactoryABI = `[{
	"anonymous": false,
	"type": "event",
	"name": "CoinCreated",
	"inputs": [
		{"indexed": true,  "name": "caller",           "type": "address"},
		{"indexed": true,  "name": "payoutRecipient",  "type": "address"},
		{"indexed": true,  "name": "platformReferrer", "type": "address"},
		{"indexed": false, "name": "currency",         "type": "address"},
		{"indexed": false, "name": "uri",              "type": "string"},
		{"indexed": false, "name": "name",             "type": "string"},
		{"indexed": false, "name": "symbol",           "type": "string"},
		{"indexed": false, "name": "coin",             "type": "address"},
		{"indexed": false, "name": "pool",             "type": "address"},
		{"indexed": false, "name": "version",          "type": "string"}
	]
}]`

const coinCreatedEventName = "CoinCreated"

// number of topics on a CoinCreated log: signature plus three indexed addresses
const coinCreatedTopics = 4

var (
	// CoinFactoryABI is the parsed factory ABI.
	CoinFactoryABI = mustParseABI(coinFactoryABI)

	// CoinCreatedEvent is the CoinCreated event description.
	CoinCreatedEvent = CoinFactoryABI.Events[coinCreatedEventName]

	// CoinCreatedTopic is the keccak256 hash of the CoinCreated event signature.
	CoinCreatedTopic = CoinCreatedEvent.ID

	// ErrNotCoinCreated is returned when a log is not a CoinCreated event.
	ErrNotCoinCreated = errors.New("log is not a CoinCreated event")
)

func mustParseABI(raw string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(raw))
	if err != nil {
		panic(fmt.Sprintf("failed to parse coin factory ABI: %v", err))
	}
	return parsed
}

// DecodeCoinCreated decodes a raw CoinCreated log into a LogRecord.
func DecodeCoinCreated(log types.Log) (coin.LogRecord, error) {
	if len(log.Topics) != coinCreatedTopics || log.Topics[0] != CoinCreatedTopic {
		return coin.LogRecord{}, ErrNotCoinCreated
	}

	values, err := CoinCreatedEvent.Inputs.NonIndexed().Unpack(log.Data)
	if err != nil {
		return coin.LogRecord{}, fmt.Errorf("failed to unpack CoinCreated data in tx %s: %w", log.TxHash.Hex(), err)
	}

	const nonIndexedFields = 7
	if len(values) != nonIndexedFields {
		return coin.LogRecord{}, fmt.Errorf("unexpected CoinCreated field count %d", len(values))
	}

	rec := coin.LogRecord{
		BlockNumber:      log.BlockNumber,
		TxHash:           log.TxHash,
		LogIndex:         log.Index,
		Caller:           common.BytesToAddress(log.Topics[1].Bytes()),
		PayoutRecipient:  common.BytesToAddress(log.Topics[2].Bytes()),
		PlatformReferrer: common.BytesToAddress(log.Topics[3].Bytes()),
	}

	var ok bool
	if rec.Currency, ok = values[0].(common.Address); !ok {
		return coin.LogRecord{}, fieldTypeError("currency", values[0])
	}
	if rec.URI, ok = values[1].(string); !ok {
		return coin.LogRecord{}, fieldTypeError("uri", values[1])
	}
	if rec.Name, ok = values[2].(string); !ok {
		return coin.LogRecord{}, fieldTypeError("name", values[2])
	}
	if rec.Symbol, ok = values[3].(string); !ok {
		return coin.LogRecord{}, fieldTypeError("symbol", values[3])
	}
	if rec.Coin, ok = values[4].(common.Address); !ok {
		return coin.LogRecord{}, fieldTypeError("coin", values[4])
	}
	if rec.Pool, ok = values[5].(common.Address); !ok {
		return coin.LogRecord{}, fieldTypeError("pool", values[5])
	}
	if rec.Version, ok = values[6].(string); !ok {
		return coin.LogRecord{}, fieldTypeError("version", values[6])
	}

	return rec, nil
}

func fieldTypeError(field string, v any) error {
	return fmt.Errorf("CoinCreated field %s has unexpected type %T", field, v)
}
