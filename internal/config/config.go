package config

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/tdex-network/tdex-confirm/internal/core/domain"
	"github.com/tdex-network/tdex-confirm/internal/infrastructure/qr"
	"github.com/tdex-network/tdex-confirm/pkg/displayutil"
	"github.com/tdex-network/tdex-confirm/pkg/wallet"
)

const (
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// NetworkKey is the network addresses are derived for and whose name is
	// shown along with them
	NetworkKey = "NETWORK"
	// AddressChunkWidthKey is the max number of characters of an address shown per line
	AddressChunkWidthKey = "ADDRESS_CHUNK_WIDTH"
	// PubkeyChunkWidthKey is the max number of hex characters of a public key shown per line
	PubkeyChunkWidthKey = "PUBKEY_CHUNK_WIDTH"
	// QRRecoveryLevelKey is the error correction level of the scannable view.
	// One of low, medium, high, highest
	QRRecoveryLevelKey = "QR_RECOVERY_LEVEL"
	// SessionTimeoutKey is the duration after which a pending session is
	// abandoned. Zero disables the timeout
	SessionTimeoutKey = "SESSION_TIMEOUT"
	// MetricsTextfileKey is the path of the file where session counters are
	// dumped on exit, if set
	MetricsTextfileKey = "METRICS_TEXTFILE"

	envPrefix = "TDEX_CONFIRM"
)

var vip *viper.Viper

// InitConfig loads the configuration from TDEX_CONFIRM_* environment
// variables on top of the defaults and validates it.
func InitConfig() error {
	vip = viper.New()
	vip.SetEnvPrefix(envPrefix)
	vip.AutomaticEnv()

	vip.SetDefault(LogLevelKey, int(log.InfoLevel))
	vip.SetDefault(NetworkKey, wallet.NetworkBitcoin)
	vip.SetDefault(AddressChunkWidthKey, displayutil.AddressChunkWidth)
	vip.SetDefault(PubkeyChunkWidthKey, displayutil.PublicKeyChunkWidth)
	vip.SetDefault(QRRecoveryLevelKey, qr.DefaultRecoveryLevel)
	vip.SetDefault(SessionTimeoutKey, 0)
	vip.SetDefault(MetricsTextfileKey, "")

	if err := validate(); err != nil {
		return fmt.Errorf("error while validating config: %s", err)
	}

	return nil
}

// GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

// GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

// GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

// GetLogLevel returns the configured logrus level.
func GetLogLevel() log.Level {
	return log.Level(GetInt(LogLevelKey))
}

// GetNetwork returns the configured network. The value is validated by
// InitConfig.
func GetNetwork() wallet.Network {
	net, _ := wallet.NetworkByName(GetString(NetworkKey))
	return net
}

// GetLayout returns the configured line widths of displayed values.
func GetLayout() domain.Layout {
	return domain.Layout{
		AddressChunkWidth:   GetInt(AddressChunkWidthKey),
		PublicKeyChunkWidth: GetInt(PubkeyChunkWidthKey),
	}
}

func validate() error {
	logLevel := GetInt(LogLevelKey)
	if logLevel < int(log.PanicLevel) || logLevel > int(log.TraceLevel) {
		return fmt.Errorf(
			"%s must be in range [%d, %d]", LogLevelKey, log.PanicLevel, log.TraceLevel,
		)
	}

	if _, err := wallet.NetworkByName(GetString(NetworkKey)); err != nil {
		return err
	}

	if err := GetLayout().Validate(); err != nil {
		return fmt.Errorf(
			"%s and %s must be positive: %w", AddressChunkWidthKey, PubkeyChunkWidthKey, err,
		)
	}

	if _, err := qr.NewEncoder(GetString(QRRecoveryLevelKey)); err != nil {
		return err
	}

	if GetDuration(SessionTimeoutKey) < 0 {
		return fmt.Errorf("%s must not be negative", SessionTimeoutKey)
	}

	return nil
}
