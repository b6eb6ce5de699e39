package application

import (
	"context"
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/vulpemventures/arsigner/internal/core/ports"
)

// OwnerService resolves the owner and the address of a custodial key
// without involving the remote signer.
type OwnerService struct {
	node ports.Node

	log func(format string, a ...interface{})
}

func NewOwnerService(node ports.Node) (*OwnerService, error) {
	if node == nil {
		return nil, ErrMissingNode
	}

	logFn := func(format string, a ...interface{}) {
		format = fmt.Sprintf("owner service: %s", format)
		log.Debugf(format, a...)
	}
	return &OwnerService{node, logFn}, nil
}

// OwnerInfo returns the owner and the address for the given key and,
// optionally, the balance of the address.
func (s *OwnerService) OwnerInfo(
	ctx context.Context, args OwnerArgs, withBalance bool,
) (*OwnerInfo, error) {
	pubkey, err := args.publicKey()
	if err != nil {
		return nil, err
	}

	info := &OwnerInfo{
		PublicKey: hex.EncodeToString(pubkey.Compressed()),
		Owner:     pubkey.Owner(),
		Address:   pubkey.Address(),
	}
	if !withBalance {
		return info, nil
	}

	balance, err := s.node.Balance(ctx, info.Address)
	if err != nil {
		return nil, err
	}
	s.log("balance of %s is %s winston", info.Address, balance)
	info.Balance = balance
	return info, nil
}
