// Package probability turns layered win-rate settings into the win probability for one bet.
package probability

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishCasino_Go/internal/domain"
	"github.com/osse101/BrandishCasino_Go/internal/logger"
	"github.com/osse101/BrandishCasino_Go/internal/metrics"
	"github.com/osse101/BrandishCasino_Go/internal/rng"
)

// SettingsReader is the part of the settings store the resolver needs
type SettingsReader interface {
	GetWinRates(ctx context.Context, userID string, game domain.GameType) (domain.WinRates, error)
	// ConsumeForcedOutcome atomically decrements a pending forced outcome.
	// ok is false when none was pending.
	ConsumeForcedOutcome(ctx context.Context, userID string, game domain.GameType) (mode domain.ForcedMode, ok bool, err error)
}

// Resolver produces the effective probability for one bet. It never fails.
type Resolver interface {
	Resolve(ctx context.Context, game domain.GameType, userID string, maxPayout, balance decimal.Decimal) domain.Resolution
}

// Config holds resolver tuning
type Config struct {
	FallbackProbability float64
	GovernedProbability float64
	Timeout             time.Duration
}

type resolver struct {
	settings SettingsReader
	governor Governor
	config   Config
}

// NewResolver creates a resolver backed by settings and guarded by governor
func NewResolver(settings SettingsReader, governor Governor, config Config) Resolver {
	if config.Timeout <= 0 {
		config.Timeout = DefaultSettingsTimeout
	}
	if !validProbability(config.FallbackProbability) {
		config.FallbackProbability = DefaultFallbackProbability
	}
	if !validProbability(config.GovernedProbability) {
		config.GovernedProbability = DefaultGovernedProbability
	}
	return &resolver{settings: settings, governor: governor, config: config}
}

func (r *resolver) Resolve(ctx context.Context, game domain.GameType, userID string, maxPayout, balance decimal.Decimal) domain.Resolution {
	log := logger.FromContext(ctx)

	res := r.layered(ctx, game, userID)

	if mode, ok := r.consumeForced(ctx, game, userID); ok {
		res.Source = domain.SourceForced
		res.ForceWin = mode == domain.ForceWin
		res.ForceLoss = mode == domain.ForceLoss
		metrics.ForcedOutcomesConsumed.WithLabelValues(string(game), string(mode)).Inc()
		log.Info(LogMsgForcedOutcomeConsumed, "user_id", userID, "game", game, "mode", mode)
	}

	if !res.ForceWin && r.governor != nil && r.governor.WouldExceedLimit(userID, maxPayout, balance) {
		if res.Probability > r.config.GovernedProbability {
			res.Probability = r.config.GovernedProbability
		}
		res.Governed = true
		metrics.GovernorClamps.WithLabelValues(string(game)).Inc()
		log.Info(LogMsgGovernorClamped,
			"user_id", userID,
			"game", game,
			"max_payout", maxPayout.String(),
			"balance", balance.String())
	}

	log.Debug(LogMsgProbabilityResolved,
		"user_id", userID,
		"game", game,
		"probability", res.Probability,
		"source", res.Source)
	return res
}

// layered applies user > game > global > fallback
func (r *resolver) layered(ctx context.Context, game domain.GameType, userID string) domain.Resolution {
	fallback := domain.Resolution{Probability: r.config.FallbackProbability, Source: domain.SourceFallback}
	if r.settings == nil {
		return fallback
	}

	callCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	rates, err := r.settings.GetWinRates(callCtx, userID, game)
	if err != nil {
		reason := metrics.ReasonUnavailable
		if errors.Is(err, context.DeadlineExceeded) {
			reason = metrics.ReasonTimeout
		}
		metrics.ResolverFallbacks.WithLabelValues(reason).Inc()
		logger.FromContext(ctx).Warn(LogMsgRatesUnavailable, "game", game, "user_id", userID, "error", err)
		return fallback
	}

	layers := []struct {
		value  *float64
		source domain.RateSource
	}{
		{rates.User, domain.SourceUser},
		{rates.Game, domain.SourceGame},
		{rates.Global, domain.SourceGlobal},
	}
	for _, layer := range layers {
		if layer.value == nil {
			continue
		}
		if !validProbability(*layer.value) {
			metrics.ResolverFallbacks.WithLabelValues(metrics.ReasonInvalid).Inc()
			logger.FromContext(ctx).Warn(LogMsgRatesInvalid,
				"game", game, "source", layer.source, "value", *layer.value)
			return fallback
		}
		return domain.Resolution{Probability: *layer.value, Source: layer.source}
	}
	return fallback
}

func (r *resolver) consumeForced(ctx context.Context, game domain.GameType, userID string) (domain.ForcedMode, bool) {
	if r.settings == nil {
		return "", false
	}

	callCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	mode, ok, err := r.settings.ConsumeForcedOutcome(callCtx, userID, game)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgForcedLookupFailed, "game", game, "user_id", userID, "error", err)
		return "", false
	}
	if !ok || (mode != domain.ForceWin && mode != domain.ForceLoss) {
		return "", false
	}
	return mode, true
}

func validProbability(p float64) bool {
	return !math.IsNaN(p) && p >= 0 && p <= 1
}

// Decide draws the binary decision for a resolved bet
func Decide(res domain.Resolution, src rng.Source) domain.OutcomeDecision {
	forced := res.ForceWin || res.ForceLoss
	switch {
	case res.ForceWin:
		return domain.OutcomeDecision{Won: true, Forced: forced}
	case res.ForceLoss:
		return domain.OutcomeDecision{Won: false, Forced: forced}
	}
	return domain.OutcomeDecision{Won: src.Float64() < res.Probability}
}
