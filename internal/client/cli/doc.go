// Package cli implements the ljpost command line.
//
// Each invocation runs one command and exits:
//
//	ljpost -u alice post -subject "Hello" -body "<b>hi</b>" -tags go,lj
//	ljpost edit -id 100 -body-file entry.html -strip-newlines
//	ljpost forget -all
//
// App wires configuration, logging, the XML-RPC client and the SQLite
// credential cache. Passwords come from LJPOST_PASSWORD, the cache (after a
// previous -remember), or a terminal prompt read without echo.
package cli
