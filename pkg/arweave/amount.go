package arweave

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// WinstonDecimals is the number of decimal places between AR and its
// smallest indivisible unit, the winston.
const WinstonDecimals = 12

var plainDecimal = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// ParseAR converts a decimal AR amount (ie. "10.5") into winston. Negative
// values, exponents, malformed strings and amounts with more than
// WinstonDecimals fractional digits are rejected.
func ParseAR(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return nil, fmt.Errorf("%w: empty amount", ErrInvalidAmount)
	}
	if !plainDecimal.MatchString(amount) {
		return nil, fmt.Errorf(
			"%w: '%s' is not a plain decimal number", ErrInvalidAmount, amount,
		)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidAmount, err)
	}

	winston := d.Shift(WinstonDecimals)
	if !winston.IsInteger() {
		return nil, fmt.Errorf(
			"%w: amount has more than %d decimal places", ErrInvalidAmount,
			WinstonDecimals,
		)
	}
	return winston.BigInt(), nil
}

// ParseWinston parses an integer amount of winston in base 10.
func ParseWinston(amount string) (*big.Int, error) {
	winston, ok := new(big.Int).SetString(strings.TrimSpace(amount), 10)
	if !ok {
		return nil, fmt.Errorf("%w: '%s' is not an integer", ErrInvalidAmount, amount)
	}
	if err := validateAmount(winston); err != nil {
		return nil, err
	}
	return winston, nil
}

// FormatWinston renders an amount of winston as a decimal AR string.
func FormatWinston(winston *big.Int) string {
	if winston == nil {
		return "0"
	}
	return decimal.NewFromBigInt(winston, -WinstonDecimals).String()
}

func validateAmount(amount *big.Int) error {
	if amount == nil {
		return fmt.Errorf("%w: missing value", ErrInvalidAmount)
	}
	if amount.Sign() < 0 {
		return fmt.Errorf("%w: amount must not be negative", ErrInvalidAmount)
	}
	return nil
}
