package util

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// FileFingerprint identifies a file's content for memoization.
func FileFingerprint(path string, size int64, modTime time.Time, content []byte) string {
	builder := strings.Builder{}
	builder.WriteString(path)
	builder.WriteString("|")
	builder.WriteString(fmt.Sprintf("%d|%d|", size, modTime.UnixNano()))
	builder.WriteString(HashBytes(content))
	return hashString(builder.String())
}

// HashBytes returns the MD5 hash of raw content.
func HashBytes(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}

// HashString returns the MD5 hash of an arbitrary string.
func HashString(input string) string {
	return hashString(strings.TrimSpace(strings.ToLower(input)))
}

func hashString(input string) string {
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}
