package arweave

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChunkData(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		size     int
		expected []int
	}{
		{"single byte", 1, []int{1}},
		{"below max", MaxChunkSize - 1, []int{MaxChunkSize - 1}},
		{"exactly max", MaxChunkSize, []int{MaxChunkSize, 0}},
		{"rebalanced", MaxChunkSize + 1000, []int{131572, 131572}},
		{"rebalanced odd", MaxChunkSize + 1001, []int{131573, 131572}},
		{"no rebalance", MaxChunkSize + MinChunkSize, []int{MaxChunkSize, MinChunkSize}},
		{
			"three chunks", 2*MaxChunkSize + MinChunkSize,
			[]int{MaxChunkSize, MaxChunkSize, MinChunkSize},
		},
	}
	for _, tt := range tests {
		chunks := chunkData(make([]byte, tt.size))
		sizes := make([]int, 0, len(chunks))
		cursor := 0
		for _, c := range chunks {
			require.Equal(t, cursor, c.minByteRange, tt.name)
			sizes = append(sizes, c.maxByteRange-c.minByteRange)
			cursor = c.maxByteRange
		}
		require.Equal(t, tt.expected, sizes, tt.name)
		require.Equal(t, tt.size, cursor, tt.name)
	}
}

func TestDataRoot(t *testing.T) {
	t.Parallel()

	require.Nil(t, DataRoot(nil))

	sum := func(buf ...[]byte) []byte {
		h := sha256.New()
		for _, b := range buf {
			h.Write(b)
		}
		return h.Sum(nil)
	}
	leaf := func(data []byte, maxByteRange int) []byte {
		return sum(sum(sum(data)), sum(note(maxByteRange)))
	}

	data := []byte("hello")
	require.Equal(t, leaf(data, 5), DataRoot(data))

	big := make([]byte, MaxChunkSize+MinChunkSize)
	for i := range big {
		big[i] = byte(i)
	}
	left := leaf(big[:MaxChunkSize], MaxChunkSize)
	right := leaf(big[MaxChunkSize:], len(big))
	expected := sum(sum(left), sum(right), sum(note(MaxChunkSize)))
	require.Equal(t, expected, DataRoot(big))
	require.Equal(t, DataRoot(big), DataRoot(append([]byte{}, big...)))
}

func TestNote(t *testing.T) {
	t.Parallel()

	n := note(0x0102)
	require.Len(t, n, noteSize)
	require.Equal(t, byte(0x01), n[30])
	require.Equal(t, byte(0x02), n[31])
	require.Equal(t, make([]byte, 30), n[:30])
}
