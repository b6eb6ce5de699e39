package arweave

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

type tagJSON struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type transactionJSON struct {
	Format    int       `json:"format"`
	ID        string    `json:"id"`
	LastTx    string    `json:"last_tx"`
	Owner     string    `json:"owner"`
	Tags      []tagJSON `json:"tags"`
	Target    string    `json:"target"`
	Quantity  string    `json:"quantity"`
	Data      string    `json:"data"`
	DataSize  string    `json:"data_size"`
	DataRoot  string    `json:"data_root"`
	Reward    string    `json:"reward"`
	Signature string    `json:"signature"`
}

// MarshalJSON returns the wire form of the transaction accepted by nodes.
// Tag names and values are base64url encoded.
func (tx *Transaction) MarshalJSON() ([]byte, error) {
	tags := make([]tagJSON, 0, len(tx.Tags))
	for _, tag := range tx.Tags {
		tags = append(tags, tagJSON{
			Name:  EncodeB64URL([]byte(tag.Name)),
			Value: EncodeB64URL([]byte(tag.Value)),
		})
	}
	return json.Marshal(transactionJSON{
		Format:    tx.Format,
		ID:        tx.ID,
		LastTx:    tx.LastTx,
		Owner:     tx.Owner,
		Tags:      tags,
		Target:    tx.Target,
		Quantity:  amountString(tx.Quantity),
		Data:      EncodeB64URL(tx.Data),
		DataSize:  strconv.Itoa(tx.DataSize()),
		DataRoot:  tx.DataRoot,
		Reward:    amountString(tx.Reward),
		Signature: tx.Signature,
	})
}

// UnmarshalJSON parses the wire form of a transaction. The signature type
// is not part of the wire form and defaults to secp256k1.
func (tx *Transaction) UnmarshalJSON(buf []byte) error {
	var raw transactionJSON
	if err := json.Unmarshal(buf, &raw); err != nil {
		return err
	}

	quantity, ok := new(big.Int).SetString(raw.Quantity, 10)
	if !ok {
		return fmt.Errorf("%w: quantity '%s'", ErrInvalidAmount, raw.Quantity)
	}
	reward, ok := new(big.Int).SetString(raw.Reward, 10)
	if !ok {
		return fmt.Errorf("%w: reward '%s'", ErrInvalidAmount, raw.Reward)
	}
	data, err := DecodeB64URL(raw.Data)
	if err != nil {
		return fmt.Errorf("invalid data: %s", err)
	}
	if raw.DataSize != strconv.Itoa(len(data)) {
		return fmt.Errorf("data_size %s does not match data length", raw.DataSize)
	}

	tags := make([]Tag, 0, len(raw.Tags))
	for _, t := range raw.Tags {
		name, err := DecodeB64URL(t.Name)
		if err != nil {
			return fmt.Errorf("invalid tag name: %s", err)
		}
		value, err := DecodeB64URL(t.Value)
		if err != nil {
			return fmt.Errorf("invalid tag value: %s", err)
		}
		tags = append(tags, Tag{Name: string(name), Value: string(value)})
	}

	*tx = Transaction{
		Format:        raw.Format,
		ID:            raw.ID,
		LastTx:        raw.LastTx,
		Owner:         raw.Owner,
		Tags:          tags,
		Target:        raw.Target,
		Quantity:      quantity,
		Data:          data,
		DataRoot:      raw.DataRoot,
		Reward:        reward,
		Signature:     raw.Signature,
		SignatureType: SignatureTypeSecp256k1,
	}
	return nil
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}
