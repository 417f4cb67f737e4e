package rewardcenter

import (
	"github.com/code-payments/reward-center/pkg/config"
	"github.com/code-payments/reward-center/pkg/config/env"
	"github.com/code-payments/reward-center/pkg/config/memory"
	"github.com/code-payments/reward-center/pkg/config/wrapper"
)

const (
	envConfigPrefix = "REWARD_CENTER_"

	DisableMetadataValidationConfigEnvName = envConfigPrefix + "DISABLE_METADATA_VALIDATION"
	defaultDisableMetadataValidation       = false
)

type conf struct {
	disableMetadataValidation config.Bool
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() *conf

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() *conf {
		return &conf{
			disableMetadataValidation: env.NewBoolConfig(DisableMetadataValidationConfigEnvName, defaultDisableMetadataValidation),
		}
	}
}

type testOverrides struct {
	disableMetadataValidation bool
}

func withManualTestOverrides(overrides *testOverrides) ConfigProvider {
	return func() *conf {
		return &conf{
			disableMetadataValidation: wrapper.NewBoolConfig(memory.NewConfig(overrides.disableMetadataValidation), defaultDisableMetadataValidation),
		}
	}
}
