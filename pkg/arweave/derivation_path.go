package arweave

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// DerivationPath is a sequence of non-hardened child indexes walked from an
// extended public key.
type DerivationPath []uint32

// ParseDerivationPath parses "m/0/1" or "0/1". Hardened steps are refused
// since they can't be derived without the private key.
func ParseDerivationPath(strPath string) (DerivationPath, error) {
	strPath = strings.TrimSpace(strPath)
	if strPath == "" {
		return nil, ErrMissingDerivationPath
	}

	steps := strings.Split(strPath, "/")
	if steps[0] == "m" {
		steps = steps[1:]
	}
	if len(steps) == 0 {
		return nil, ErrMalformedDerivationPath
	}

	path := make(DerivationPath, 0, len(steps))
	for _, step := range steps {
		if step == "" {
			return nil, ErrMalformedDerivationPath
		}
		if strings.HasSuffix(step, "'") || strings.HasSuffix(step, "h") {
			return nil, fmt.Errorf("%w: step '%s'", ErrHardenedDerivation, step)
		}

		index, err := strconv.ParseUint(step, 10, 32)
		if err != nil {
			return nil, fmt.Errorf(
				"%w: invalid step '%s'", ErrMalformedDerivationPath, step,
			)
		}
		if index >= hdkeychain.HardenedKeyStart {
			return nil, fmt.Errorf(
				"%w: step %d", ErrHardenedDerivation, index,
			)
		}
		path = append(path, uint32(index))
	}
	return path, nil
}
