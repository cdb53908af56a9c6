package utils

import (
	"crypto/rand"
	"math/big"
	"os"

	"github.com/hashicorp/go-version"
	"github.com/ztrue/tracerr"
)

var randLetter = []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// RandString return n length cryptographically secure random string
// [a-zA-Z0-9]+, usable for generated credentials.
func RandString(n int) string {
	s := make([]byte, n)
	for i := range s {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(randLetter))))
		if err != nil {
			panic(err)
		}
		s[i] = randLetter[num.Int64()]
	}

	return string(s)
}

// CheckVersion checks ver with constraint string.
//	CheckVersion("5.7.40", ">= 5.7.0")
func CheckVersion(ver string, constraint string) (bool, error) {
	v, err := version.NewVersion(ver)
	if err != nil {
		return false, tracerr.Wrap(err)
	}
	cst, err := version.NewConstraint(constraint)
	if err != nil {
		return false, tracerr.Wrap(err)
	}
	return cst.Check(v), nil
}

// FileExist returns whether file in path exist.
func FileExist(path string) bool {
	var exist = true
	if _, err := os.Stat(path); os.IsNotExist(err) {
		exist = false
	}
	return exist
}
