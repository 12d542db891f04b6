// Package byteutil pools scratch buffers.
package byteutil

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

var bytesBuffer = sync.Pool{
	New: func() interface{} { return &bytes.Buffer{} },
}

func GetBytesBuf() *bytes.Buffer {
	return bytesBuffer.Get().(*bytes.Buffer)
}

// PutBytesBuf resets p before returning it to the pool.
func PutBytesBuf(p *bytes.Buffer) {
	p.Reset()
	bytesBuffer.Put(p)
}

// HashStrings is the hex sha256 of parts, each terminated by a unit
// separator so that ("ab", "c") and ("a", "bc") differ.
func HashStrings(parts ...string) string {
	buf := GetBytesBuf()
	defer PutBytesBuf(buf)
	for _, p := range parts {
		buf.WriteString(p)
		buf.WriteByte(0x1f)
	}
	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
