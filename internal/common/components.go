package common

const (
	ComponentIngester = "ingester"
	ComponentScanner  = "scanner"
	ComponentMetadata = "metadata"
	ComponentRPC      = "rpc"
	ComponentArchive  = "archive"
	ComponentAPI      = "api"
)

var AllComponents = map[string]struct{}{
	ComponentIngester: {},
	ComponentScanner:  {},
	ComponentMetadata: {},
	ComponentRPC:      {},
	ComponentArchive:  {},
	ComponentAPI:      {},
}
