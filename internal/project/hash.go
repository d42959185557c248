package project

import (
	"crypto/sha256"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// DigestOf хеширует сырые байты: содержимое дампа или строку конфигурации.
func DigestOf(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// Combine строит составной ключ кеша: H( base || extra1 || extra2 ... ).
// Порядок extras должен быть детерминированным.
func Combine(base Digest, extras ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(base[:])
	for _, d := range extras {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
