package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
)

func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DigestReader hashes everything read through it.
type DigestReader struct {
	r      io.Reader
	hasher hash.Hash
	n      int64
}

func NewDigestReader(r io.Reader) *DigestReader {
	h := sha256.New()
	return &DigestReader{
		r:      io.TeeReader(r, h),
		hasher: h,
	}
}

func (d *DigestReader) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	d.n += int64(n)
	return n, err
}

// Sum is the hex SHA-256 of the bytes read so far.
func (d *DigestReader) Sum() string {
	return hex.EncodeToString(d.hasher.Sum(nil))
}

func (d *DigestReader) BytesRead() int64 {
	return d.n
}
