package coin

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// MediaResolver turns a content-addressed media URI into a fetchable URL.
type MediaResolver func(uri string) string

// Build derives a CoinRecord from a log record and its (possibly nil) metadata document.
// Missing metadata fields are replaced with the defaults: empty description,
// DefaultArtistName, the placeholder cover art and no audio URL.
func Build(rec LogRecord, doc *MetadataDocument, placeholder string, media MediaResolver) CoinRecord {
	if placeholder == "" {
		placeholder = DefaultCoverArt
	}
	if media == nil {
		media = func(uri string) string { return uri }
	}

	c := CoinRecord{
		Address:       rec.Coin,
		Name:          rec.Name,
		Symbol:        rec.Symbol,
		ArtistName:    DefaultArtistName,
		ArtistAddress: rec.PayoutRecipient,
		CoverArt:      placeholder,
		Creator:       rec.Caller,
		MetadataURI:   rec.URI,
		BlockNumber:   rec.BlockNumber,
		TxHash:        rec.TxHash,
		Metadata:      doc.Clone(),
	}

	if doc == nil {
		return c
	}

	if v := trimmed(doc.Description); v != "" {
		c.Description = v
	}

	if artist, ok := doc.Attribute(AttributeArtist); ok {
		c.ArtistName = artist
	} else if v := trimmed(doc.Artist); v != "" {
		c.ArtistName = v
	}

	if v := trimmed(doc.Image); v != "" {
		c.CoverArt = media(v)
	}

	if v := trimmed(doc.AnimationURL); v != "" {
		audio := media(v)
		c.AudioURL = &audio
	}

	c.Genre, _ = doc.Attribute(AttributeGenre)
	c.Type, _ = doc.Attribute(AttributeType)

	return c
}

// Dedup keeps the first record per contract address and preserves order.
func Dedup(records []CoinRecord) []CoinRecord {
	seen := make(map[common.Address]struct{}, len(records))
	out := make([]CoinRecord, 0, len(records))

	for _, r := range records {
		if _, ok := seen[r.Address]; ok {
			continue
		}
		seen[r.Address] = struct{}{}
		out = append(out, r)
	}

	return out
}

func trimmed(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
