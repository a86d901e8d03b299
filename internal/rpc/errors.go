package rpc

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

var (
	logLimitRe       = regexp.MustCompile(`(?i)query returned more than \d+ results`)
	suggestedRangeRe = regexp.MustCompile(`\[(0x[0-9a-fA-F]+),\s*(0x[0-9a-fA-F]+)\]`)
)

// LogLimit describes a provider rejecting an eth_getLogs call because the
// result set exceeded its cap, e.g.
// "Query returned more than 10000 results. Try with this block range [0x7dfd25, 0x7e0fcc]."
type LogLimit struct {
	// Message is the provider text the limit was found in.
	Message string
	// From and To are the narrower range proposed by the provider, valid when Suggested is set.
	From      uint64
	To        uint64
	Suggested bool
}

// AsLogLimit reports whether err is a result cap rejection. The error data of an
// rpc.DataError is inspected first, then the error message.
func AsLogLimit(err error) (LogLimit, bool) {
	if err == nil {
		return LogLimit{}, false
	}

	candidates := make([]string, 0, 2) //nolint:mnd
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) && dataErr.ErrorData() != nil {
		candidates = append(candidates, fmt.Sprintf("%v", dataErr.ErrorData()))
	}
	candidates = append(candidates, err.Error())

	for _, msg := range candidates {
		if !logLimitRe.MatchString(msg) {
			continue
		}
		limit := LogLimit{Message: msg}
		limit.From, limit.To, limit.Suggested = parseSuggestedRange(msg)
		return limit, true
	}

	return LogLimit{}, false
}

func parseSuggestedRange(msg string) (from, to uint64, ok bool) {
	m := suggestedRangeRe.FindStringSubmatch(msg)
	if m == nil {
		return 0, 0, false
	}

	from, errFrom := hexutil.DecodeUint64(m[1])
	to, errTo := hexutil.DecodeUint64(m[2])
	if errFrom != nil || errTo != nil || from > to {
		return 0, 0, false
	}

	return from, to, true
}
