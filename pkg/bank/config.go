package bank

import (
	"github.com/code-payments/reward-center/pkg/config"
	"github.com/code-payments/reward-center/pkg/config/env"
	"github.com/code-payments/reward-center/pkg/config/memory"
	"github.com/code-payments/reward-center/pkg/config/wrapper"
)

const (
	envConfigPrefix = "BANK_"

	LamportsPerSignatureConfigEnvName = envConfigPrefix + "LAMPORTS_PER_SIGNATURE"
	defaultLamportsPerSignature       = 5000

	RentLamportsPerByteYearConfigEnvName = envConfigPrefix + "RENT_LAMPORTS_PER_BYTE_YEAR"
	defaultRentLamportsPerByteYear       = 3480

	RentExemptionYearsConfigEnvName = envConfigPrefix + "RENT_EXEMPTION_YEARS"
	defaultRentExemptionYears       = 2

	MaxInvokeDepthConfigEnvName = envConfigPrefix + "MAX_INVOKE_DEPTH"
	defaultMaxInvokeDepth       = 4

	LockStripesConfigEnvName = envConfigPrefix + "LOCK_STRIPES"
	defaultLockStripes       = 1024

	StatusCacheCapacityConfigEnvName = envConfigPrefix + "STATUS_CACHE_CAPACITY"
	defaultStatusCacheCapacity       = 1_000_000

	DisableSignatureVerificationConfigEnvName = envConfigPrefix + "DISABLE_SIGNATURE_VERIFICATION"
	defaultDisableSignatureVerification       = false
)

type conf struct {
	lamportsPerSignature         config.Uint64
	rentLamportsPerByteYear      config.Uint64
	rentExemptionYears           config.Uint64
	maxInvokeDepth               config.Uint64
	lockStripes                  config.Uint64
	statusCacheCapacity          config.Uint64
	disableSignatureVerification config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			lamportsPerSignature:         env.NewUint64Config(LamportsPerSignatureConfigEnvName, defaultLamportsPerSignature),
			rentLamportsPerByteYear:      env.NewUint64Config(RentLamportsPerByteYearConfigEnvName, defaultRentLamportsPerByteYear),
			rentExemptionYears:           env.NewUint64Config(RentExemptionYearsConfigEnvName, defaultRentExemptionYears),
			maxInvokeDepth:               env.NewUint64Config(MaxInvokeDepthConfigEnvName, defaultMaxInvokeDepth),
			lockStripes:                  env.NewUint64Config(LockStripesConfigEnvName, defaultLockStripes),
			statusCacheCapacity:          env.NewUint64Config(StatusCacheCapacityConfigEnvName, defaultStatusCacheCapacity),
			disableSignatureVerification: env.NewBoolConfig(DisableSignatureVerificationConfigEnvName, defaultDisableSignatureVerification),
		}
	}
}

type testOverrides struct {
	lamportsPerSignature         uint64
	maxInvokeDepth               uint64
	disableSignatureVerification bool
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			lamportsPerSignature:         wrapper.NewUint64Config(memory.NewConfig(overrides.lamportsPerSignature), defaultLamportsPerSignature),
			rentLamportsPerByteYear:      wrapper.NewUint64Config(memory.NewConfig(nil), defaultRentLamportsPerByteYear),
			rentExemptionYears:           wrapper.NewUint64Config(memory.NewConfig(nil), defaultRentExemptionYears),
			maxInvokeDepth:               wrapper.NewUint64Config(memory.NewConfig(overrides.maxInvokeDepth), defaultMaxInvokeDepth),
			lockStripes:                  wrapper.NewUint64Config(memory.NewConfig(uint64(16)), defaultLockStripes),
			statusCacheCapacity:          wrapper.NewUint64Config(memory.NewConfig(uint64(1024)), defaultStatusCacheCapacity),
			disableSignatureVerification: wrapper.NewBoolConfig(memory.NewConfig(overrides.disableSignatureVerification), defaultDisableSignatureVerification),
		}
	}
}

// WithTestConfigs returns the defaults with small lock and status cache sizes,
// for use by packages that run programs against an in memory ledger.
func WithTestConfigs() ConfigProvider {
	return withManualTestOverrides(&testOverrides{
		lamportsPerSignature: defaultLamportsPerSignature,
		maxInvokeDepth:       defaultMaxInvokeDepth,
	})
}
