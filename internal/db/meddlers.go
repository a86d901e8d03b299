package db

import (
	"database/sql"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/russross/meddler"
)

func init() {
	meddler.Register("address", HexMeddler[common.Address]{parse: common.HexToAddress})
	meddler.Register("hash", HexMeddler[common.Hash]{parse: common.HexToHash})
}

type hexValue interface {
	common.Address | common.Hash
	Hex() string
}

// HexMeddler stores go-ethereum fixed size values as 0x-prefixed hex text.
// Both T and *T fields are supported. A NULL column reads back as nil or the zero value.
type HexMeddler[T hexValue] struct {
	parse func(string) T
}

func (m HexMeddler[T]) PreRead(fieldAddr any) (scanTarget any, err error) {
	return new(sql.NullString), nil
}

func (m HexMeddler[T]) PostRead(fieldAddr, scanTarget any) error {
	ns, ok := scanTarget.(*sql.NullString)
	if !ok {
		return fmt.Errorf("expected *sql.NullString, got %T", scanTarget)
	}

	switch ptr := fieldAddr.(type) {
	case **T:
		if !ns.Valid {
			*ptr = nil
			return nil
		}
		v := m.parse(ns.String)
		*ptr = &v
	case *T:
		var zero T
		if !ns.Valid {
			*ptr = zero
			return nil
		}
		*ptr = m.parse(ns.String)
	default:
		return fmt.Errorf("unsupported field type %T", fieldAddr)
	}

	return nil
}

func (m HexMeddler[T]) PreWrite(field any) (saveValue any, err error) {
	switch v := field.(type) {
	case *T:
		if v == nil {
			return nil, nil
		}
		return (*v).Hex(), nil
	case T:
		return v.Hex(), nil
	default:
		return nil, fmt.Errorf("unsupported field type %T", field)
	}
}
