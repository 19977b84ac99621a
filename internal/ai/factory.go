package ai

import (
	"strings"

	"github.com/fdg312/culinary-hub/internal/config"
)

// NewProvider builds the provider selected by AI_MODE and applies the
// client-side rate limit.
func NewProvider(cfg *config.Config, logger config.Logger) (Provider, error) {
	mode := strings.ToLower(strings.TrimSpace(cfg.AIMode))
	if mode == "" {
		mode = config.AIModeMock
	}

	var provider Provider
	switch mode {
	case config.AIModeOpenAI:
		provider = NewOpenAIProvider(cfg)
	case config.AIModeLangChain:
		lc, err := NewLangChainProvider(cfg)
		if err != nil {
			return nil, err
		}
		provider = lc
	default:
		mode = config.AIModeMock
		provider = NewMockProvider()
	}

	if logger != nil {
		logger.Printf("INFO ai: mode=%s model=%s rate_limit_rps=%g burst=%d", mode, cfg.OpenAIModel, cfg.AIRateLimitRPS, cfg.AIRateLimitBurst)
	}
	return WithRateLimit(provider, cfg.AIRateLimitRPS, cfg.AIRateLimitBurst), nil
}
