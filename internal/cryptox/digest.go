// Package cryptox implements the hashing used by LiveJournal challenge-response
// authentication.
//
// The protocol fixes the algorithm: the account password is represented by its
// lower-case hex MD5 digest, and the response to a server challenge is the hex
// MD5 of challenge || digest. The plain password never leaves this package.
package cryptox

import (
	"crypto/md5"
	"encoding/hex"
)

// digestLen is the length of a hex encoded MD5 sum.
const digestLen = md5.Size * 2

func md5Hex(parts ...[]byte) string {
	h := md5.New()
	for _, p := range parts {
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// PasswordDigest returns the hex MD5 digest of password.
func PasswordDigest(password []byte) string {
	return md5Hex(password)
}

// ChallengeResponse computes auth_response for the given server challenge and
// password digest.
//
// Example:
//
//	digest := cryptox.PasswordDigest([]byte("secret"))
//	resp := cryptox.ChallengeResponse("c0:1073113200:2831:60:2TCbFBYR72f2jhVDuowz:0fba728f5964ea54160a5b18317d92df", digest)
func ChallengeResponse(challenge, digest string) string {
	return md5Hex([]byte(challenge), []byte(digest))
}

// IsDigest reports whether s looks like a value produced by PasswordDigest.
func IsDigest(s string) bool {
	if len(s) != digestLen {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}
