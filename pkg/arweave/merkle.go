package arweave

import (
	"crypto/sha256"
	"encoding/binary"
)

const (
	// MaxChunkSize is the size of every chunk the data is split into, but the
	// last one (or two).
	MaxChunkSize = 256 * 1024
	// MinChunkSize is the smallest allowed size for the last chunk. The last
	// two chunks are rebalanced if the remainder would be smaller.
	MinChunkSize = 32 * 1024

	noteSize = 32
)

type chunk struct {
	dataHash     []byte
	minByteRange int
	maxByteRange int
}

type merkleNode struct {
	id           []byte
	maxByteRange int
}

// DataRoot returns the merkle root committing to the given data, or nil for
// empty data.
func DataRoot(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	chunks := chunkData(data)
	nodes := make([]merkleNode, 0, len(chunks))
	for _, c := range chunks {
		nodes = append(nodes, merkleNode{
			id:           sha256Of(sha256Of(c.dataHash), sha256Of(note(c.maxByteRange))),
			maxByteRange: c.maxByteRange,
		})
	}

	for len(nodes) > 1 {
		next := make([]merkleNode, 0, (len(nodes)+1)/2)
		for i := 0; i < len(nodes); i += 2 {
			if i+1 == len(nodes) {
				next = append(next, nodes[i])
				continue
			}
			left, right := nodes[i], nodes[i+1]
			next = append(next, merkleNode{
				id: sha256Of(
					sha256Of(left.id), sha256Of(right.id),
					sha256Of(note(left.maxByteRange)),
				),
				maxByteRange: right.maxByteRange,
			})
		}
		nodes = next
	}
	return nodes[0].id
}

func chunkData(data []byte) []chunk {
	chunks := make([]chunk, 0, len(data)/MaxChunkSize+1)
	rest := data
	cursor := 0

	for len(rest) >= MaxChunkSize {
		chunkSize := MaxChunkSize
		nextChunkSize := len(rest) - MaxChunkSize
		if nextChunkSize > 0 && nextChunkSize < MinChunkSize {
			chunkSize = (len(rest) + 1) / 2
		}

		hash := sha256.Sum256(rest[:chunkSize])
		chunks = append(chunks, chunk{
			dataHash:     hash[:],
			minByteRange: cursor,
			maxByteRange: cursor + chunkSize,
		})
		cursor += chunkSize
		rest = rest[chunkSize:]
	}

	hash := sha256.Sum256(rest)
	return append(chunks, chunk{
		dataHash:     hash[:],
		minByteRange: cursor,
		maxByteRange: cursor + len(rest),
	})
}

// note encodes an offset as a 32 bytes big-endian integer.
func note(offset int) []byte {
	buf := make([]byte, noteSize)
	binary.BigEndian.PutUint64(buf[noteSize-8:], uint64(offset))
	return buf
}

func sha256Of(chunks ...[]byte) []byte {
	h := sha256.New()
	for _, c := range chunks {
		h.Write(c)
	}
	return h.Sum(nil)
}
