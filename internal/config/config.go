package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the key to customize the arsigner datadir.
	DatadirKey = "DATADIR"
	// LogLevelKey is the key to customize the log level to catch more specific
	// or more high level logs.
	LogLevelKey = "LOG_LEVEL"
	// SignerUrlKey is the key to customize the base url of the remote signer.
	SignerUrlKey = "SIGNER_URL"
	// SignerPathKey is the key to customize the path of the remote signer
	// endpoint. It is part of the signed content of every request.
	SignerPathKey = "SIGNER_PATH"
	// SignerAccessTokenKey is the key to set the bearer token for the remote
	// signer API.
	SignerAccessTokenKey = "SIGNER_ACCESS_TOKEN"
	// SignerPrivateKeyPathKey is the key to set the path of the PEM private
	// key used to sign the requests to the remote signer.
	SignerPrivateKeyPathKey = "SIGNER_PRIVATE_KEY_PATH"
	// SignerTimeoutKey is the key to bound the wait for the remote signer.
	// Zero means no client-side timeout.
	SignerTimeoutKey = "SIGNER_TIMEOUT_IN_SECONDS"
	// VaultIDKey is the key to set the id of the vault holding the key.
	VaultIDKey = "VAULT_ID"
	// NoteKey is the key to customize the note attached to signing requests.
	NoteKey = "NOTE"
	// NodeUrlKey is the key to customize the url of the Arweave node.
	NodeUrlKey = "NODE_URL"
	// NodeTimeoutKey is the key to bound every request to the node.
	NodeTimeoutKey = "NODE_TIMEOUT_IN_SECONDS"
	// NoProfilerKey is the key to disable the dump of pipeline stats.
	NoProfilerKey = "NO_PROFILER"

	// ProfilerLocation is the folder inside the datadir containing profiler
	// stats files.
	ProfilerLocation = "stats"

	envPrefix = "ARSIGNER"
)

var (
	defaultDatadir     = btcutil.AppDataDir("arsigner", false)
	defaultLogLevel    = 4
	defaultSignerUrl   = "https://api.fordefi.com"
	defaultSignerPath  = "/api/v1/transactions/create-and-wait"
	defaultNodeUrl     = "https://arweave.net"
	defaultNodeTimeout = 30
	defaultNote        = "arsigner transfer"
)

// Config holds the whole configuration of the process. It is loaded once at
// startup and never modified afterwards.
type Config struct {
	Datadir              string
	LogLevel             int
	SignerUrl            string
	SignerPath           string
	SignerAccessToken    string
	SignerPrivateKeyPath string
	SignerTimeout        time.Duration
	VaultID              string
	Note                 string
	NodeUrl              string
	NodeTimeout          time.Duration
	NoProfiler           bool
}

// Load reads the configuration from the environment (ARSIGNER_ prefixed
// variables) and, if path is not empty, from the given config file. Env vars
// take precedence over the file.
func Load(path string) (*Config, error) {
	vip := viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, defaultLogLevel)
	vip.SetDefault(SignerUrlKey, defaultSignerUrl)
	vip.SetDefault(SignerPathKey, defaultSignerPath)
	vip.SetDefault(SignerTimeoutKey, 0)
	vip.SetDefault(NoteKey, defaultNote)
	vip.SetDefault(NodeUrlKey, defaultNodeUrl)
	vip.SetDefault(NodeTimeoutKey, defaultNodeTimeout)
	vip.SetDefault(NoProfilerKey, false)

	if path != "" {
		vip.SetConfigFile(path)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %s", err)
		}
	}

	cfg := &Config{
		Datadir:              vip.GetString(DatadirKey),
		LogLevel:             vip.GetInt(LogLevelKey),
		SignerUrl:            vip.GetString(SignerUrlKey),
		SignerPath:           vip.GetString(SignerPathKey),
		SignerAccessToken:    vip.GetString(SignerAccessTokenKey),
		SignerPrivateKeyPath: vip.GetString(SignerPrivateKeyPathKey),
		SignerTimeout:        time.Duration(vip.GetInt(SignerTimeoutKey)) * time.Second,
		VaultID:              vip.GetString(VaultIDKey),
		Note:                 vip.GetString(NoteKey),
		NodeUrl:              vip.GetString(NodeUrlKey),
		NodeTimeout:          time.Duration(vip.GetInt(NodeTimeoutKey)) * time.Second,
		NoProfiler:           vip.GetBool(NoProfilerKey),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}
	if c.LogLevel < 0 || c.LogLevel > 6 {
		return fmt.Errorf("log level must be in range [0, 6]")
	}
	if err := validateUrl(c.SignerUrl); err != nil {
		return fmt.Errorf("invalid signer url: %s", err)
	}
	if !strings.HasPrefix(c.SignerPath, "/") {
		return fmt.Errorf("signer path must start with /")
	}
	if c.SignerTimeout < 0 {
		return fmt.Errorf("signer timeout must not be negative")
	}
	if c.VaultID != "" {
		if _, err := uuid.Parse(c.VaultID); err != nil {
			return fmt.Errorf("vault id must be a valid uuid")
		}
	}
	if err := validateUrl(c.NodeUrl); err != nil {
		return fmt.Errorf("invalid node url: %s", err)
	}
	if c.NodeTimeout < 0 {
		return fmt.Errorf("node timeout must not be negative")
	}
	return nil
}

// ValidateSigner checks that everything required to talk to the remote
// signer is set. Commands not requesting signatures can skip it.
func (c *Config) ValidateSigner() error {
	if c.SignerAccessToken == "" {
		return fmt.Errorf("missing %s_%s", envPrefix, SignerAccessTokenKey)
	}
	if c.SignerPrivateKeyPath == "" {
		return fmt.Errorf("missing %s_%s", envPrefix, SignerPrivateKeyPathKey)
	}
	if c.VaultID == "" {
		return fmt.Errorf("missing %s_%s", envPrefix, VaultIDKey)
	}
	return nil
}

// ProfilerDatadir returns the folder where stats are dumped, creating it if
// needed.
func (c *Config) ProfilerDatadir() (string, error) {
	dir := filepath.Join(c.Datadir, ProfilerLocation)
	if err := makeDirectoryIfNotExists(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// Redacted returns the config as key/value pairs with secrets hidden.
func (c *Config) Redacted() map[string]interface{} {
	return map[string]interface{}{
		DatadirKey:              c.Datadir,
		LogLevelKey:             c.LogLevel,
		SignerUrlKey:            c.SignerUrl,
		SignerPathKey:           c.SignerPath,
		SignerAccessTokenKey:    redact(c.SignerAccessToken),
		SignerPrivateKeyPathKey: c.SignerPrivateKeyPath,
		SignerTimeoutKey:        int(c.SignerTimeout.Seconds()),
		VaultIDKey:              c.VaultID,
		NoteKey:                 c.Note,
		NodeUrlKey:              c.NodeUrl,
		NodeTimeoutKey:          int(c.NodeTimeout.Seconds()),
		NoProfilerKey:           c.NoProfiler,
	}
}

func validateUrl(str string) error {
	u, err := url.Parse(str)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unknown protocol %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return "********"
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
