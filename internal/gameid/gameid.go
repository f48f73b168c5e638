// Package gameid generates prefixed, time-sortable identifiers for tables
// and players: a millisecond timestamp plus random tail, encoded in
// Crockford base32 ("tbl_01h2xcejqtf2nbrexx3vqjhp41").
package gameid

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

const encodedLen = 26

// NewTableID returns a fresh table identifier.
func NewTableID() string {
	return "tbl_" + generate()
}

// NewPlayerID returns a fresh player identifier.
func NewPlayerID() string {
	return "ply_" + generate()
}

func generate() string {
	var raw [16]byte

	// 48-bit millisecond timestamp keeps ids sortable by creation time.
	now := time.Now().UnixMilli()
	raw[0] = byte(now >> 40)
	raw[1] = byte(now >> 32)
	raw[2] = byte(now >> 24)
	raw[3] = byte(now >> 16)
	raw[4] = byte(now >> 8)
	raw[5] = byte(now)

	if _, err := rand.Read(raw[6:]); err != nil {
		panic("gameid: failed to read random bytes: " + err.Error())
	}

	return encodeBase32(raw)
}

func encodeBase32(data [16]byte) string {
	var b strings.Builder
	b.Grow(encodedLen)

	for i := 0; i < encodedLen; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if bitIndex <= 3 {
			value = (data[byteIndex] >> (3 - bitIndex)) & 0x1f
		} else {
			value = (data[byteIndex] << (bitIndex - 3)) & 0x1f
			if byteIndex+1 < len(data) {
				value |= data[byteIndex+1] >> (11 - bitIndex)
			}
		}
		b.WriteByte(alphabet[value])
	}

	return b.String()
}

// Validate checks that an id carries the expected prefix and a well-formed
// base32 payload.
func Validate(id, prefix string) error {
	rest, ok := strings.CutPrefix(id, prefix+"_")
	if !ok {
		return fmt.Errorf("id %q missing prefix %q", id, prefix)
	}
	if len(rest) != encodedLen {
		return fmt.Errorf("id payload must be %d characters, got %d", encodedLen, len(rest))
	}
	for i := 0; i < len(rest); i++ {
		if !strings.ContainsRune(alphabet, rune(rest[i])) {
			return fmt.Errorf("invalid character %q at position %d", rest[i], i)
		}
	}
	return nil
}
