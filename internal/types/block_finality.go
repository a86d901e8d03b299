package types

import (
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// BlockFinality selects which head block a scan runs up to.
type BlockFinality string

const (
	// FinalityFinalized scans up to the finalized block. Never reorged, lags the tip the most.
	FinalityFinalized BlockFinality = "finalized"

	// FinalitySafe scans up to the safe block.
	FinalitySafe BlockFinality = "safe"

	// FinalityLatest scans up to the chain tip.
	FinalityLatest BlockFinality = "latest"
)

// Finalities lists every supported mode.
var Finalities = []BlockFinality{FinalityLatest, FinalitySafe, FinalityFinalized}

func (f BlockFinality) String() string {
	return string(f)
}

// IsValid reports whether f is a supported mode.
func (f BlockFinality) IsValid() bool {
	for _, known := range Finalities {
		if f == known {
			return true
		}
	}
	return false
}

// UnmarshalText normalizes the configured value. Validation is left to IsValid
// so that config errors carry the field path.
func (f *BlockFinality) UnmarshalText(data []byte) error {
	*f = BlockFinality(strings.ToLower(strings.TrimSpace(string(data))))
	return nil
}

func (f BlockFinality) MarshalText() ([]byte, error) {
	return []byte(f), nil
}

// JSONSchema describes the accepted values.
func (BlockFinality) JSONSchema() *jsonschema.Schema {
	enum := make([]any, 0, len(Finalities))
	for _, f := range Finalities {
		enum = append(enum, f.String())
	}
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        enum,
		Default:     FinalityLatest.String(),
		Description: "head block the scan runs up to",
	}
}

// ParseBlockFinality parses a mode name, ignoring case and surrounding whitespace.
func ParseBlockFinality(s string) (BlockFinality, error) {
	var f BlockFinality
	_ = f.UnmarshalText([]byte(s))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid block finality: %q (must be one of: latest, safe, finalized)", s)
	}
	return f, nil
}
