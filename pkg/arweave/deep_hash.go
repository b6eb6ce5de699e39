package arweave

import (
	"crypto/sha512"
	"strconv"
)

// deepHashItem is either a blob of bytes or a list of deepHashItems.
type deepHashItem interface {
	deepHash() []byte
}

type blob []byte

type list []deepHashItem

func (b blob) deepHash() []byte {
	tag := sha384(append([]byte("blob"), strconv.Itoa(len(b))...))
	return sha384(tag, sha384(b))
}

func (l list) deepHash() []byte {
	acc := sha384(append([]byte("list"), strconv.Itoa(len(l))...))
	for _, item := range l {
		acc = sha384(acc, item.deepHash())
	}
	return acc
}

func sha384(chunks ...[]byte) []byte {
	h := sha512.New384()
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}
