package common

import "time"

const (
	// DefaultEndpoint is the LiveJournal XML-RPC interface URL.
	DefaultEndpoint = "https://www.livejournal.com/interface/xmlrpc"

	// DefaultUserAgent is sent with every XML-RPC request.
	DefaultUserAgent = "ljpost (+https://github.com/dmitrijs2005/ljpost)"

	// DefaultRequestTimeout bounds a single remote call.
	DefaultRequestTimeout = 30 * time.Second

	// EnvPrefix prefixes every environment variable read by config.
	EnvPrefix = "LJPOST_"
)
