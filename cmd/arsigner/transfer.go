package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vulpemventures/arsigner/internal/core/application"
	"github.com/vulpemventures/arsigner/internal/core/domain"
	"github.com/vulpemventures/arsigner/pkg/arweave"
)

var (
	transferKey      ownerFlags
	transferTarget   string
	transferAmount   string
	transferWinston  string
	transferReward   string
	transferAnchor   string
	transferData     string
	transferDataFile string
	transferTags     []string
	transferDryRun   bool

	transferCmd = &cobra.Command{
		Use:   "transfer",
		Short: "send AR from the vault to a target address",
		Long: "this command builds a transaction owned by the vault key, gets " +
			"it signed by the remote signer and submits it to the node",
		RunE: transfer,
	}
)

func init() {
	transferKey.register(transferCmd)
	transferCmd.Flags().StringVar(
		&transferTarget, "target", "", "address of the receiver",
	)
	transferCmd.Flags().StringVar(
		&transferAmount, "amount", "", "amount to send in AR (ie. 0.5)",
	)
	transferCmd.Flags().StringVar(
		&transferWinston, "amount-winston", "",
		"amount to send in winston, alternative to --amount",
	)
	transferCmd.Flags().StringVar(
		&transferReward, "reward", "",
		"reward in winston, fetched from the node if not set",
	)
	transferCmd.Flags().StringVar(
		&transferAnchor, "anchor", "",
		"last_tx anchor, fetched from the node if not set",
	)
	transferCmd.Flags().StringVar(
		&transferData, "data", "", "data to attach to the transaction",
	)
	transferCmd.Flags().StringVar(
		&transferDataFile, "data-file", "",
		"path of a file whose content is attached to the transaction, "+
			"alternative to --data",
	)
	transferCmd.Flags().StringArrayVar(
		&transferTags, "tag", nil, "tag to attach as name=value, can be repeated",
	)
	transferCmd.Flags().BoolVar(
		&transferDryRun, "dry-run", false,
		"stop before requesting the signature and print the signing payload",
	)
}

func transfer(cmd *cobra.Command, _ []string) error {
	args, err := parseTransferArgs()
	if err != nil {
		return err
	}

	appCfg, err := newAppConfig(!args.DryRun)
	if err != nil {
		return err
	}
	svc, err := appCfg.TransferService()
	if err != nil {
		return err
	}
	if profilerSvc := appCfg.Profiler(); profilerSvc != nil {
		defer profilerSvc.Stop()
	}

	res, err := svc.Transfer(cmd.Context(), args)
	if err != nil && !errors.Is(err, domain.ErrSubmissionRejected) {
		return err
	}

	if jsonErr := printJSON(transferReply(res)); jsonErr != nil {
		return jsonErr
	}
	return err
}

func parseTransferArgs() (application.TransferArgs, error) {
	args := application.TransferArgs{
		Owner:  transferKey.args(),
		Target: transferTarget,
		LastTx: transferAnchor,
		DryRun: transferDryRun,
	}

	switch {
	case transferAmount != "" && transferWinston != "":
		return args, fmt.Errorf("--amount and --amount-winston are mutually exclusive")
	case transferAmount != "":
		quantity, err := arweave.ParseAR(transferAmount)
		if err != nil {
			return args, err
		}
		args.Quantity = quantity
	case transferWinston != "":
		quantity, err := arweave.ParseWinston(transferWinston)
		if err != nil {
			return args, err
		}
		args.Quantity = quantity
	default:
		args.Quantity = big.NewInt(0)
	}

	if transferReward != "" {
		reward, err := arweave.ParseWinston(transferReward)
		if err != nil {
			return args, err
		}
		args.Reward = reward
	}

	if transferData != "" && transferDataFile != "" {
		return args, fmt.Errorf("--data and --data-file are mutually exclusive")
	}
	if transferData != "" {
		args.Data = []byte(transferData)
	}
	if transferDataFile != "" {
		data, err := os.ReadFile(cleanAndExpandPath(transferDataFile))
		if err != nil {
			return args, err
		}
		args.Data = data
	}

	for _, tag := range transferTags {
		name, value, ok := strings.Cut(tag, "=")
		if !ok || name == "" {
			return args, fmt.Errorf("invalid tag %q, must be name=value", tag)
		}
		args.Tags = append(args.Tags, arweave.Tag{Name: name, Value: value})
	}

	return args, nil
}

func transferReply(res *application.TransferResult) map[string]interface{} {
	reply := map[string]interface{}{
		"signature_data": hex.EncodeToString(res.SignatureData),
		"owner":          res.Tx.Owner,
		"target":         res.Tx.Target,
		"quantity":       res.Tx.Quantity.String(),
		"reward":         res.Tx.Reward.String(),
		"last_tx":        res.Tx.LastTx,
		"data_size":      res.Tx.DataSize(),
		"data_root":      res.Tx.DataRoot,
	}
	if res.Tx.IsSigned() {
		reply["id"] = res.Tx.ID
	}
	if sub := res.Submission; sub != nil {
		reply["accepted"] = sub.Accepted
		reply["status"] = sub.Status
		if !sub.Accepted {
			reply["status_text"] = sub.StatusText
			reply["body"] = sub.Body
		}
	}
	return reply
}
