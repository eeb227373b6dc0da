package usecase

import (
	"context"

	"github.com/runoshun/flowsync/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config // Values rendered into the template
	Global bool           // If true, initialize global config; otherwise data dir config
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates a configuration file rendered from in.Config.
// It returns ErrConfigExists if the target file exists.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	if in.Global {
		if err := uc.configManager.InitGlobalConfig(cfg); err != nil {
			return nil, err
		}
		return &InitConfigOutput{Path: uc.configManager.GetGlobalConfigInfo().Path}, nil
	}

	if err := uc.configManager.InitDataConfig(cfg); err != nil {
		return nil, err
	}
	return &InitConfigOutput{Path: uc.configManager.GetDataConfigInfo().Path}, nil
}
