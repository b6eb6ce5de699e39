package arweave_test

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
	"github.com/vulpemventures/arsigner/pkg/arweave"
)

const (
	custodialCompressedKey = "A4VJoRMaNKQd1bvKbjxl/xbcBH5dWooJ0v/QX/5K2tHE"
	custodialXpub          = "xpub661MyMwAqRbcFCvjYemPD3f6o3da15jDYLgW9PzyJv6RJN7uwraUpXoXUGqWQs8xWVtqetvFF4AkW1NnHrPWCf1KQoxGSDbFuAbbr5uFBUg"
	custodialXpubAddress1  = "CNj6gP3BU0rpzt-y-RGU5pmAwKoPBkNeRzXoOEnz7BQ"
)

func TestDecompress(t *testing.T) {
	t.Parallel()

	t.Run("custodial key", func(t *testing.T) {
		t.Parallel()

		compressed, err := base64.StdEncoding.DecodeString(custodialCompressedKey)
		require.NoError(t, err)
		require.Len(t, compressed, 33)

		uncompressed, err := arweave.Decompress(compressed)
		require.NoError(t, err)
		require.Len(t, uncompressed, 65)
		require.Equal(t, byte(0x04), uncompressed[0])
		require.Equal(t, compressed[1:], uncompressed[1:33])

		recompressed, err := arweave.Compress(uncompressed)
		require.NoError(t, err)
		require.Equal(t, compressed, recompressed)
	})

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		for i := 0; i < 32; i++ {
			compressed := randomCompressedKey(t)

			uncompressed, err := arweave.Decompress(compressed)
			require.NoError(t, err)
			require.Len(t, uncompressed, 65)

			recompressed, err := arweave.Compress(uncompressed)
			require.NoError(t, err)
			require.Equal(t, compressed, recompressed)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		valid := randomCompressedKey(t)
		xTooBig := append([]byte{0x02}, bytes.Repeat([]byte{0xff}, 32)...)
		// x^3+7 has no square root mod p for these x.
		xOffCurve := func(x byte) []byte {
			return append([]byte{0x02}, append(make([]byte, 31), x)...)
		}
		uncompressed, err := arweave.Decompress(valid)
		require.NoError(t, err)

		tests := []struct {
			name string
			key  []byte
		}{
			{"empty", nil},
			{"short", valid[:32]},
			{"long", append(append([]byte{}, valid...), 0x00)},
			{"unknown prefix", append([]byte{0x05}, valid[1:]...)},
			{"uncompressed prefix", append([]byte{0x04}, valid[1:]...)},
			{"x out of field", xTooBig},
			{"x not on curve 5", xOffCurve(0x05)},
			{"x not on curve 7", xOffCurve(0x07)},
			{"x not on curve 9", xOffCurve(0x09)},
			{"already uncompressed", uncompressed},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				res, err := arweave.Decompress(tt.key)
				require.ErrorIs(t, err, arweave.ErrInvalidKeyEncoding)
				require.Nil(t, res)
			})
		}
	})
}

func TestParsePublicKey(t *testing.T) {
	t.Parallel()

	compressed := randomCompressedKey(t)
	key, err := arweave.ParsePublicKey(compressed)
	require.NoError(t, err)

	other, err := arweave.ParsePublicKey(key.Uncompressed())
	require.NoError(t, err)
	require.Equal(t, key.Compressed(), other.Compressed())
	require.Equal(t, key.Owner(), other.Owner())

	address, err := arweave.AddressFromOwner(key.Owner())
	require.NoError(t, err)
	require.Equal(t, key.Address(), address)
	require.Len(t, address, 43)

	hybrid := key.Uncompressed()
	hybrid[0] = 0x06
	_, err = arweave.ParsePublicKey(hybrid)
	require.ErrorIs(t, err, arweave.ErrInvalidKeyEncoding)
}

func TestDeriveChildPublicKey(t *testing.T) {
	t.Parallel()

	xprv, xpub := newExtendedKeys(t)

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		for _, index := range []uint32{0, 1, 2, 1000, hdkeychain.HardenedKeyStart - 1} {
			key, err := arweave.DeriveChildPublicKey(arweave.DeriveChildPublicKeyArgs{
				Xpub:  xpub,
				Index: index,
			})
			require.NoError(t, err)

			again, err := arweave.DeriveChildPublicKey(arweave.DeriveChildPublicKeyArgs{
				Xpub:  xpub,
				Index: index,
			})
			require.NoError(t, err)
			require.Equal(t, key.Compressed(), again.Compressed())

			require.Equal(t, expectedChildKey(t, xprv, index), key.Compressed())
		}
	})

	t.Run("custodial xpub", func(t *testing.T) {
		t.Parallel()

		key, err := arweave.DeriveChildPublicKey(arweave.DeriveChildPublicKeyArgs{
			Xpub:  custodialXpub,
			Index: 1,
		})
		require.NoError(t, err)
		require.Equal(t, custodialXpubAddress1, key.Address())
	})

	t.Run("from path", func(t *testing.T) {
		t.Parallel()

		key, err := arweave.DerivePublicKeyFromPath(arweave.DerivePublicKeyFromPathArgs{
			Xpub:           xpub,
			DerivationPath: "m/7",
		})
		require.NoError(t, err)
		require.Equal(t, expectedChildKey(t, xprv, 7), key.Compressed())

		_, err = arweave.DerivePublicKeyFromPath(arweave.DerivePublicKeyFromPathArgs{
			Xpub:           xpub,
			DerivationPath: "m/0/1'",
		})
		require.ErrorIs(t, err, arweave.ErrDerivation)
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()

		badChecksum := []byte(xpub)
		last := len(badChecksum) - 1
		if badChecksum[last] == 'a' {
			badChecksum[last] = 'b'
		} else {
			badChecksum[last] = 'a'
		}

		tests := []struct {
			name string
			args arweave.DeriveChildPublicKeyArgs
			err  error
		}{
			{
				name: "missing xpub",
				args: arweave.DeriveChildPublicKeyArgs{},
				err:  arweave.ErrMissingExtendedKey,
			},
			{
				name: "hardened flag",
				args: arweave.DeriveChildPublicKeyArgs{Xpub: xpub, Index: 0, Hardened: true},
				err:  arweave.ErrDerivation,
			},
			{
				name: "hardened index",
				args: arweave.DeriveChildPublicKeyArgs{Xpub: xpub, Index: hdkeychain.HardenedKeyStart},
				err:  arweave.ErrDerivation,
			},
			{
				name: "bad checksum",
				args: arweave.DeriveChildPublicKeyArgs{Xpub: string(badChecksum)},
				err:  arweave.ErrDerivation,
			},
			{
				name: "not base58",
				args: arweave.DeriveChildPublicKeyArgs{Xpub: "not-an-xpub"},
				err:  arweave.ErrDerivation,
			},
			{
				name: "private key",
				args: arweave.DeriveChildPublicKeyArgs{Xpub: xprv.String()},
				err:  arweave.ErrDerivation,
			},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				key, err := arweave.DeriveChildPublicKey(tt.args)
				require.ErrorIs(t, err, tt.err)
				require.Nil(t, key)
			})
		}
	})
}

func newExtendedKeys(t *testing.T) (*hdkeychain.ExtendedKey, string) {
	seed, err := hdkeychain.GenerateSeed(hdkeychain.RecommendedSeedLen)
	require.NoError(t, err)
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	require.NoError(t, err)
	account, err := master.Derive(hdkeychain.HardenedKeyStart)
	require.NoError(t, err)
	xpub, err := account.Neuter()
	require.NoError(t, err)
	return account, xpub.String()
}

func expectedChildKey(
	t *testing.T, xprv *hdkeychain.ExtendedKey, index uint32,
) []byte {
	child, err := xprv.Derive(index)
	require.NoError(t, err)
	prvkey, err := child.ECPrivKey()
	require.NoError(t, err)
	return prvkey.PubKey().SerializeCompressed()
}

func randomCompressedKey(t *testing.T) []byte {
	key, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	return key.PubKey().SerializeCompressed()
}
