package metadata

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/goran-ethernal/CoinFeed/pkg/coin"
	"github.com/mr-tron/base58"
)

type uriKind int

const (
	kindIPFS uriKind = iota
	kindArweave
	kindHTTP
)

const (
	schemeIPFS    = "ipfs://"
	schemeArweave = "ar://"

	// sha2-256 multihash header of a CIDv0
	cidV0Length     = 34
	multihashSHA256 = 0x12
	sha256Length    = 0x20
)

// base32 lower-case multibase CIDv1 (bafy..., bafk...)
var cidV1Pattern = regexp.MustCompile(`^b[a-z2-7]{50,}$`)

// location is a parsed metadata URI.
type location struct {
	kind uriKind
	// ref is "<cid>[/path]" for IPFS, the transaction id for Arweave and the full URL for HTTP.
	ref string
}

// parseURI normalizes a metadata URI. It never touches the network.
func parseURI(raw string) (location, error) {
	uri := strings.TrimSpace(raw)
	if uri == "" {
		return location{}, fmt.Errorf("%w: empty uri", coin.ErrInvalidURI)
	}

	lower := strings.ToLower(uri)
	switch {
	case strings.HasPrefix(lower, schemeIPFS):
		ref := strings.TrimPrefix(uri[len(schemeIPFS):], "ipfs/")
		ref = strings.TrimLeft(ref, "/")
		if ref == "" {
			return location{}, fmt.Errorf("%w: missing cid in %q", coin.ErrInvalidURI, raw)
		}
		return location{kind: kindIPFS, ref: ref}, nil

	case strings.HasPrefix(lower, schemeArweave):
		ref := strings.Trim(uri[len(schemeArweave):], "/")
		if ref == "" {
			return location{}, fmt.Errorf("%w: missing transaction id in %q", coin.ErrInvalidURI, raw)
		}
		return location{kind: kindArweave, ref: ref}, nil

	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		u, err := url.Parse(uri)
		if err != nil || u.Host == "" {
			return location{}, fmt.Errorf("%w: malformed url %q", coin.ErrInvalidURI, raw)
		}
		return location{kind: kindHTTP, ref: u.String()}, nil
	}

	cid, _, _ := strings.Cut(uri, "/")
	if isCID(cid) {
		return location{kind: kindIPFS, ref: uri}, nil
	}

	return location{}, fmt.Errorf("%w: unsupported uri %q", coin.ErrInvalidURI, raw)
}

// isCID reports whether s looks like a CIDv0 (base58 sha2-256 multihash) or a base32 CIDv1.
func isCID(s string) bool {
	if strings.HasPrefix(s, "Qm") {
		decoded, err := base58.Decode(s)
		if err != nil {
			return false
		}
		return len(decoded) == cidV0Length && decoded[0] == multihashSHA256 && decoded[1] == sha256Length
	}

	return cidV1Pattern.MatchString(s)
}

// urls expands a location against the configured gateways, in fallback order.
func (l location) urls(ipfsGateways []string, arweaveGateway string) []string {
	switch l.kind {
	case kindIPFS:
		out := make([]string, 0, len(ipfsGateways))
		for _, gw := range ipfsGateways {
			out = append(out, strings.TrimRight(gw, "/")+"/ipfs/"+l.ref)
		}
		return out
	case kindArweave:
		return []string{strings.TrimRight(arweaveGateway, "/") + "/" + l.ref}
	default:
		return []string{l.ref}
	}
}
