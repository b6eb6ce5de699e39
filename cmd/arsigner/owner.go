package main

import (
	"github.com/spf13/cobra"
	"github.com/vulpemventures/arsigner/internal/core/application"
	"github.com/vulpemventures/arsigner/pkg/arweave"
)

type ownerFlags struct {
	pubkey string
	xpub   string
	index  uint32
	path   string
}

func (f *ownerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(
		&f.pubkey, "pubkey", "",
		"compressed public key of the vault (base64 or hex)",
	)
	cmd.Flags().StringVar(
		&f.xpub, "xpub", "",
		"extended public key to derive the vault key from, alternative to --pubkey",
	)
	cmd.Flags().Uint32Var(
		&f.index, "index", 0, "non-hardened child index to derive from --xpub",
	)
	cmd.Flags().StringVar(
		&f.path, "derivation-path", "",
		"non-hardened relative path to derive from --xpub (ie. m/0/1), "+
			"overrides --index",
	)
}

func (f *ownerFlags) args() application.OwnerArgs {
	return application.OwnerArgs{
		PublicKey:      f.pubkey,
		Xpub:           f.xpub,
		Index:          f.index,
		DerivationPath: f.path,
	}
}

var (
	ownerKey     ownerFlags
	ownerBalance bool

	ownerCmd = &cobra.Command{
		Use:   "owner",
		Short: "show owner and address of a vault key",
		Long: "this command lets you derive the Arweave owner and address of " +
			"the vault public key, and optionally fetch its balance",
		RunE: ownerInfo,
	}
)

func init() {
	ownerKey.register(ownerCmd)
	ownerCmd.Flags().BoolVar(
		&ownerBalance, "balance", false, "fetch the balance of the address",
	)
}

func ownerInfo(cmd *cobra.Command, _ []string) error {
	appCfg, err := newAppConfig(false)
	if err != nil {
		return err
	}
	svc, err := appCfg.OwnerService()
	if err != nil {
		return err
	}

	info, err := svc.OwnerInfo(cmd.Context(), ownerKey.args(), ownerBalance)
	if err != nil {
		return err
	}

	reply := map[string]string{
		"public_key": info.PublicKey,
		"owner":      info.Owner,
		"address":    info.Address,
	}
	if info.Balance != nil {
		reply["balance_winston"] = info.Balance.String()
		reply["balance_ar"] = arweave.FormatWinston(info.Balance)
	}
	return printJSON(reply)
}
