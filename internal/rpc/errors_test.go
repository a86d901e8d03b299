package rpc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type dataError struct {
	msg  string
	data any
}

func (e *dataError) Error() string  { return e.msg }
func (e *dataError) ErrorData() any { return e.data }

func TestAsLogLimit(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantLimit     bool
		wantSuggested bool
		wantFrom      uint64
		wantTo        uint64
	}{
		{
			name: "nil error",
			err:  nil,
		},
		{
			name: "unrelated error",
			err:  errors.New("connection reset by peer"),
		},
		{
			name: "data error with suggestion",
			err: &dataError{
				msg:  "query returned more than 10000 results",
				data: "Query returned more than 10000 results. Try with this block range [0x7dfd25, 0x7e0fcc].",
			},
			wantLimit:     true,
			wantSuggested: true,
			wantFrom:      0x7dfd25,
			wantTo:        0x7e0fcc,
		},
		{
			name:      "data error without suggestion",
			err:       &dataError{msg: "limit", data: "Query returned more than 20000 results"},
			wantLimit: true,
		},
		{
			name:      "limit only in the message",
			err:       &dataError{msg: "query returned more than 10000 results", data: nil},
			wantLimit: true,
		},
		{
			name:      "wrapped plain error",
			err:       fmt.Errorf("window [1, 2]: %w", errors.New("Query returned more than 5000 results")),
			wantLimit: true,
		},
		{
			name: "data error about something else",
			err:  &dataError{msg: "execution reverted", data: "0x08c379a0"},
		},
		{
			name: "inverted suggestion is ignored",
			err: &dataError{
				msg:  "limit",
				data: "Query returned more than 10000 results. Try with this block range [0x10, 0x1].",
			},
			wantLimit: true,
		},
		{
			name: "malformed suggestion is ignored",
			err: &dataError{
				msg:  "limit",
				data: "Query returned more than 10000 results. Try with this block range [0x, 0x1].",
			},
			wantLimit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, ok := AsLogLimit(tt.err)

			require.Equal(t, tt.wantLimit, ok)
			require.Equal(t, tt.wantSuggested, limit.Suggested)
			require.Equal(t, tt.wantFrom, limit.From)
			require.Equal(t, tt.wantTo, limit.To)
			if ok {
				require.NotEmpty(t, limit.Message)
			}
		})
	}
}
