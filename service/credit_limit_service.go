package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"credit-limit/domain"
	"credit-limit/logger"
	"credit-limit/metrics"
	"credit-limit/repository"
)

const cacheKeyPrefix = "credit-limit:v1:"

type CreditLimitService struct {
	cache    repository.CacheRepository
	validate *validator.Validate
	strict   bool
}

type Option func(*CreditLimitService)

// WithStrictValidation rejects negative income and scores outside 300-850
// instead of processing them arithmetically.
func WithStrictValidation(strict bool) Option {
	return func(s *CreditLimitService) {
		s.strict = strict
	}
}

func NewCreditLimitService(cache repository.CacheRepository, opts ...Option) *CreditLimitService {
	s := &CreditLimitService{
		cache:    cache,
		validate: newValidator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate produces the credit decision for input. Cache failures are logged
// and never fail the call.
func (s *CreditLimitService) Evaluate(
	ctx context.Context,
	input domain.ApplicantInput,
) (domain.CreditDecision, error) {

	if err := checkFinite(input); err != nil {
		return domain.CreditDecision{}, err
	}
	if s.strict {
		if err := validateStrict(s.validate, input); err != nil {
			return domain.CreditDecision{}, err
		}
	}

	log := logger.FromContext(ctx)
	key := cacheKey(input)

	if decision, ok := s.lookup(ctx, key); ok {
		log.Debug("credit decision served from cache", "key", key)
		return decision, nil
	}

	decision, err := Decide(input)
	if err != nil {
		return domain.CreditDecision{}, err
	}
	metrics.DecisionsTotal.WithLabelValues(string(decision.RiskBand)).Inc()

	if raw, err := json.Marshal(decision); err != nil {
		log.Warn("failed to encode credit decision for cache", "error", err)
	} else if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		log.Warn("failed to cache credit decision", "key", key, "error", err)
	}

	log.Info("credit limit computed",
		"credit_score", input.CreditScore,
		"risk_band", decision.RiskBand,
		"credit_limit", decision.CreditLimit.StringFixed(2),
	)
	return decision, nil
}

// Ping reports whether the decision cache is reachable.
func (s *CreditLimitService) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}

func (s *CreditLimitService) lookup(ctx context.Context, key string) (domain.CreditDecision, bool) {
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheError).Inc()
		logger.FromContext(ctx).Warn("credit decision cache lookup failed", "key", key, "error", err)
		return domain.CreditDecision{}, false
	}
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheMiss).Inc()
		return domain.CreditDecision{}, false
	}

	var decision domain.CreditDecision
	if err := json.Unmarshal([]byte(raw), &decision); err != nil {
		metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheError).Inc()
		logger.FromContext(ctx).Warn("discarding unreadable cached credit decision", "key", key, "error", err)
		return domain.CreditDecision{}, false
	}
	metrics.CacheLookupsTotal.WithLabelValues(metrics.CacheHit).Inc()
	return decision, true
}

// Decide computes the full decision for input without touching the cache.
// It fails only for non-finite income.
func Decide(input domain.ApplicantInput) (domain.CreditDecision, error) {
	maxLimit := MaxCreditLimit(input.MonthlyIncome)
	factor := AdjustmentFactor(input.CreditScore)

	limit, err := toCents(maxLimit * factor)
	if err != nil {
		return domain.CreditDecision{}, fmt.Errorf("%w: credit limit not representable: %v", ErrInvalidInput, err)
	}
	ceiling, err := toCents(maxLimit)
	if err != nil {
		return domain.CreditDecision{}, fmt.Errorf("%w: credit ceiling not representable: %v", ErrInvalidInput, err)
	}

	return domain.CreditDecision{
		CreditLimit:      limit,
		MaxCreditLimit:   ceiling,
		AdjustmentFactor: factor,
		RiskBand:         BandForScore(input.CreditScore),
	}, nil
}

func cacheKey(input domain.ApplicantInput) string {
	return cacheKeyPrefix +
		strconv.FormatFloat(input.MonthlyIncome, 'g', -1, 64) + ":" +
		strconv.Itoa(input.CreditScore)
}
