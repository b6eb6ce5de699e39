package appconfig

import (
	"fmt"

	"github.com/vulpemventures/arsigner/internal/config"
	"github.com/vulpemventures/arsigner/internal/core/application"
	"github.com/vulpemventures/arsigner/internal/core/ports"
	arweave_node "github.com/vulpemventures/arsigner/internal/infrastructure/node/arweave"
	fordefi_signer "github.com/vulpemventures/arsigner/internal/infrastructure/remote-signer/fordefi"
	pem_authenticator "github.com/vulpemventures/arsigner/internal/infrastructure/request-authenticator/pem"
	"github.com/vulpemventures/arsigner/pkg/profiler"
)

// AppConfig is the struct holding all configuration options for every
// application service (transfer and owner).
// This data structure acts also as a factory of the mentioned application
// services and the portable services used by them.
// Public config args:
//   - Config - (required) The process configuration loaded at startup.
//   - WithSigner - (optional) Whether the remote signer must be configured, required for transfers.
type AppConfig struct {
	Version string
	Commit  string
	Date    string

	Config     *config.Config
	WithSigner bool

	node        ports.Node
	signer      ports.RemoteSigner
	profilerSvc *profiler.ProfilerService
	transferSvc *application.TransferService
	ownerSvc    *application.OwnerService
}

func (c *AppConfig) Validate() error {
	if c.Config == nil {
		return fmt.Errorf("missing config")
	}
	if _, err := c.nodeService(); err != nil {
		return err
	}
	if _, err := c.profiler(); err != nil {
		return err
	}
	if !c.WithSigner {
		return nil
	}
	if err := c.Config.ValidateSigner(); err != nil {
		return err
	}
	if _, err := c.remoteSigner(); err != nil {
		return err
	}
	return nil
}

// Profiler returns nil if stats are disabled.
func (c *AppConfig) Profiler() *profiler.ProfilerService {
	return c.profilerSvc
}

func (c *AppConfig) TransferService() (*application.TransferService, error) {
	if c.transferSvc != nil {
		return c.transferSvc, nil
	}

	node, err := c.nodeService()
	if err != nil {
		return nil, err
	}
	profilerSvc, err := c.profiler()
	if err != nil {
		return nil, err
	}

	args := application.TransferServiceArgs{
		Node:          node,
		VaultID:       c.Config.VaultID,
		Note:          c.Config.Note,
		SignerTimeout: c.Config.SignerTimeout,
	}
	if profilerSvc != nil {
		args.Observer = profilerSvc
	}
	if c.WithSigner {
		signer, err := c.remoteSigner()
		if err != nil {
			return nil, err
		}
		args.Signer = signer
	}

	svc, err := application.NewTransferService(args)
	if err != nil {
		return nil, err
	}
	c.transferSvc = svc
	return c.transferSvc, nil
}

func (c *AppConfig) OwnerService() (*application.OwnerService, error) {
	if c.ownerSvc != nil {
		return c.ownerSvc, nil
	}

	node, err := c.nodeService()
	if err != nil {
		return nil, err
	}
	svc, err := application.NewOwnerService(node)
	if err != nil {
		return nil, err
	}
	c.ownerSvc = svc
	return c.ownerSvc, nil
}

func (c *AppConfig) BuildInfo() string {
	version := "dev"
	if c.Version != "" {
		version = c.Version
	}
	commit := "none"
	if c.Commit != "" {
		commit = c.Commit
	}
	date := "unknown"
	if c.Date != "" {
		date = c.Date
	}
	return fmt.Sprintf("%s (commit %s, built at %s)", version, commit, date)
}

func (c *AppConfig) nodeService() (ports.Node, error) {
	if c.node != nil {
		return c.node, nil
	}

	node, err := arweave_node.NewService(arweave_node.ServiceArgs{
		Addr:           c.Config.NodeUrl,
		RequestTimeout: c.Config.NodeTimeout,
	})
	if err != nil {
		return nil, err
	}
	c.node = node
	return c.node, nil
}

func (c *AppConfig) remoteSigner() (ports.RemoteSigner, error) {
	if c.signer != nil {
		return c.signer, nil
	}

	authenticator, err := pem_authenticator.NewAuthenticator(
		c.Config.SignerPrivateKeyPath,
	)
	if err != nil {
		return nil, err
	}
	signer, err := fordefi_signer.NewService(fordefi_signer.ServiceArgs{
		Addr:          c.Config.SignerUrl,
		Path:          c.Config.SignerPath,
		AccessToken:   c.Config.SignerAccessToken,
		Authenticator: authenticator,
	})
	if err != nil {
		return nil, err
	}
	c.signer = signer
	return c.signer, nil
}

func (c *AppConfig) profiler() (*profiler.ProfilerService, error) {
	if c.Config.NoProfiler || c.profilerSvc != nil {
		return c.profilerSvc, nil
	}

	datadir, err := c.Config.ProfilerDatadir()
	if err != nil {
		return nil, err
	}
	svc, err := profiler.NewService(profiler.ServiceOpts{Datadir: datadir})
	if err != nil {
		return nil, err
	}
	c.profilerSvc = svc
	return c.profilerSvc, nil
}
