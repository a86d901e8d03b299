package coin

import (
	"encoding/json"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultArtistName is shown when a coin's metadata names no artist.
	DefaultArtistName = "Unknown Artist"

	// DefaultCoverArt is the placeholder cover art path.
	DefaultCoverArt = "/placeholder.svg"
)

// Attribute keys that are lifted out of the metadata attribute bag.
const (
	AttributeArtist = "Artist"
	AttributeGenre  = "Genre"
	AttributeType   = "Type"
)

// LogRecord is a decoded CoinCreated event.
type LogRecord struct {
	BlockNumber uint64      `json:"block_number"`
	TxHash      common.Hash `json:"tx_hash"`
	LogIndex    uint        `json:"log_index"`

	Caller           common.Address `json:"caller"`
	PayoutRecipient  common.Address `json:"payout_recipient"`
	PlatformReferrer common.Address `json:"platform_referrer"`
	Currency         common.Address `json:"currency"`
	URI              string         `json:"uri"`
	Name             string         `json:"name"`
	Symbol           string         `json:"symbol"`
	Coin             common.Address `json:"coin"`
	Pool             common.Address `json:"pool"`
	Version          string         `json:"version"`
}

// Attribute is a single {trait_type, value} entry of a metadata document.
type Attribute struct {
	TraitType string          `json:"trait_type"`
	Value     json.RawMessage `json:"value,omitempty"`
}

// StringValue returns the attribute value as text. JSON strings are unquoted,
// any other JSON value is returned verbatim.
func (a Attribute) StringValue() string {
	if len(a.Value) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(a.Value, &s); err == nil {
		return s
	}

	v := strings.TrimSpace(string(a.Value))
	if v == "null" {
		return ""
	}
	return v
}

// MetadataDocument is the off-chain JSON document a coin's URI points to.
// Every field is optional.
type MetadataDocument struct {
	Name         *string     `json:"name,omitempty"`
	Description  *string     `json:"description,omitempty"`
	Artist       *string     `json:"artist,omitempty"`
	Image        *string     `json:"image,omitempty"`
	AnimationURL *string     `json:"animation_url,omitempty"`
	Attributes   []Attribute `json:"attributes,omitempty"`
}

// Attribute looks up an attribute by trait type, case-insensitively.
// The first matching non-empty value wins.
func (d *MetadataDocument) Attribute(traitType string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, attr := range d.Attributes {
		if !strings.EqualFold(strings.TrimSpace(attr.TraitType), traitType) {
			continue
		}
		if v := strings.TrimSpace(attr.StringValue()); v != "" {
			return v, true
		}
	}
	return "", false
}

// CoinRecord is the display-ready coin built from one LogRecord and its metadata.
type CoinRecord struct {
	Address       common.Address    `json:"address"`
	Name          string            `json:"name"`
	Symbol        string            `json:"symbol"`
	Description   string            `json:"description"`
	ArtistName    string            `json:"artist_name"`
	ArtistAddress common.Address    `json:"artist_address"`
	CoverArt      string            `json:"cover_art"`
	AudioURL      *string           `json:"audio_url,omitempty"`
	Genre         string            `json:"genre,omitempty"`
	Type          string            `json:"type,omitempty"`
	Creator       common.Address    `json:"creator"`
	MetadataURI   string            `json:"metadata_uri"`
	BlockNumber   uint64            `json:"block_number"`
	TxHash        common.Hash       `json:"tx_hash"`
	Metadata      *MetadataDocument `json:"metadata,omitempty"`
}

// Clone returns a deep copy of d.
func (d *MetadataDocument) Clone() *MetadataDocument {
	if d == nil {
		return nil
	}

	out := &MetadataDocument{
		Name:         cloneString(d.Name),
		Description:  cloneString(d.Description),
		Artist:       cloneString(d.Artist),
		Image:        cloneString(d.Image),
		AnimationURL: cloneString(d.AnimationURL),
	}
	if d.Attributes != nil {
		out.Attributes = make([]Attribute, len(d.Attributes))
		for i, attr := range d.Attributes {
			out.Attributes[i] = Attribute{
				TraitType: attr.TraitType,
				Value:     append(json.RawMessage(nil), attr.Value...),
			}
		}
	}
	return out
}

// Clone returns a copy of r that shares no memory with it.
func (r CoinRecord) Clone() CoinRecord {
	r.AudioURL = cloneString(r.AudioURL)
	r.Metadata = r.Metadata.Clone()
	return r
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
