package arweave

import (
	"fmt"
	"math/big"
	"strconv"
)

const (
	// TransactionFormat is the only transaction format supported.
	TransactionFormat = 2
	// MaxInlineDataSize is the largest data payload that can be posted
	// together with its transaction.
	MaxInlineDataSize = 10 * 1024 * 1024

	addressLen = 32
)

// Tag is a name/value pair attached to a transaction.
type Tag struct {
	Name  string
	Value string
}

// Transaction is the data structure representing a format 2 transaction.
// Binary fields (owner, target, last_tx, data_root, signature, id) are held
// in base64url form, amounts in winston.
type Transaction struct {
	Format        int
	ID            string
	LastTx        string
	Owner         string
	Tags          []Tag
	Target        string
	Quantity      *big.Int
	Data          []byte
	DataRoot      string
	Reward        *big.Int
	Signature     string
	SignatureType SignatureType
}

type NewTransactionArgs struct {
	Owner         string
	Target        string
	Quantity      *big.Int
	Reward        *big.Int
	LastTx        string
	Data          []byte
	Tags          []Tag
	SignatureType SignatureType
}

func (a NewTransactionArgs) signatureType() SignatureType {
	if a.SignatureType == 0 {
		return SignatureTypeSecp256k1
	}
	return a.SignatureType
}

func (a NewTransactionArgs) validate() error {
	if err := validateOwner(a.Owner, a.signatureType()); err != nil {
		return err
	}
	if err := validateTarget(a.Target); err != nil {
		return err
	}
	if a.Quantity == nil {
		return ErrMissingQuantity
	}
	if err := validateAmount(a.Quantity); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if a.Reward == nil {
		return ErrMissingReward
	}
	if err := validateAmount(a.Reward); err != nil {
		return fmt.Errorf("reward: %w", err)
	}
	if _, err := DecodeB64URL(a.LastTx); err != nil {
		return ErrInvalidLastTx
	}
	if len(a.Data) > MaxInlineDataSize {
		return ErrDataTooLarge
	}
	for _, tag := range a.Tags {
		if tag.Name == "" {
			return ErrInvalidTag
		}
	}
	return nil
}

// NewTransaction returns a new unsigned transaction. Amounts and data are
// copied so later changes to the args do not leak into the transaction.
func NewTransaction(args NewTransactionArgs) (*Transaction, error) {
	if err := args.validate(); err != nil {
		return nil, err
	}

	data := append([]byte{}, args.Data...)
	tags := append([]Tag{}, args.Tags...)
	return &Transaction{
		Format:        TransactionFormat,
		LastTx:        args.LastTx,
		Owner:         args.Owner,
		Tags:          tags,
		Target:        args.Target,
		Quantity:      new(big.Int).Set(args.Quantity),
		Data:          data,
		DataRoot:      EncodeB64URL(DataRoot(data)),
		Reward:        new(big.Int).Set(args.Reward),
		SignatureType: args.signatureType(),
	}, nil
}

// DataSize returns the size in bytes of the transaction data.
func (tx *Transaction) DataSize() int {
	return len(tx.Data)
}

// SignatureData returns the exact bytes to be signed for the transaction,
// that is the deep hash of its fields in the fixed order defined for format
// 2 transactions. The owner must be set since it is part of the signed
// content.
func (tx *Transaction) SignatureData() ([]byte, error) {
	if err := tx.validate(); err != nil {
		return nil, err
	}

	owner, _ := DecodeB64URL(tx.Owner)
	target, _ := DecodeB64URL(tx.Target)
	lastTx, _ := DecodeB64URL(tx.LastTx)
	dataRoot, _ := DecodeB64URL(tx.DataRoot)

	tags := make(list, 0, len(tx.Tags))
	for _, tag := range tx.Tags {
		tags = append(tags, list{blob(tag.Name), blob(tag.Value)})
	}

	return list{
		blob(strconv.Itoa(tx.Format)),
		blob(owner),
		blob(target),
		blob(tx.Quantity.String()),
		blob(tx.Reward.String()),
		blob(lastTx),
		tags,
		blob(strconv.Itoa(tx.DataSize())),
		blob(dataRoot),
	}.deepHash(), nil
}

// IsSigned returns whether a signature has been attached to the tx.
func (tx *Transaction) IsSigned() bool {
	return tx.Signature != ""
}

func (tx *Transaction) validate() error {
	if tx.Format != TransactionFormat {
		return fmt.Errorf("unsupported transaction format %d", tx.Format)
	}
	if err := validateOwner(tx.Owner, tx.SignatureType); err != nil {
		return err
	}
	if err := validateTarget(tx.Target); err != nil {
		return err
	}
	if err := validateAmount(tx.Quantity); err != nil {
		return fmt.Errorf("quantity: %w", err)
	}
	if err := validateAmount(tx.Reward); err != nil {
		return fmt.Errorf("reward: %w", err)
	}
	if _, err := DecodeB64URL(tx.LastTx); err != nil {
		return ErrInvalidLastTx
	}
	if tx.DataRoot != EncodeB64URL(DataRoot(tx.Data)) {
		return fmt.Errorf("data root does not commit to the transaction data")
	}
	return nil
}

func (tx *Transaction) copy() *Transaction {
	cp := *tx
	cp.Tags = append([]Tag{}, tx.Tags...)
	cp.Data = append([]byte{}, tx.Data...)
	cp.Quantity = new(big.Int).Set(tx.Quantity)
	cp.Reward = new(big.Int).Set(tx.Reward)
	return &cp
}

func validateOwner(owner string, sigType SignatureType) error {
	if owner == "" {
		return ErrMissingOwner
	}
	buf, err := DecodeB64URL(owner)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOwner, err)
	}
	ownerLen, ok := ownerLenBySignatureType[sigType]
	if !ok {
		return fmt.Errorf("%w %d", ErrInvalidSignatureType, sigType)
	}
	if len(buf) != ownerLen {
		return ErrInvalidOwner
	}
	if sigType == SignatureTypeSecp256k1 {
		if _, err := ParsePublicKey(buf); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidOwner, err)
		}
	}
	return nil
}

func validateTarget(target string) error {
	if target == "" {
		return nil
	}
	buf, err := DecodeB64URL(target)
	if err != nil || len(buf) != addressLen {
		return ErrInvalidTarget
	}
	return nil
}
