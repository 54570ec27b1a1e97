package rules

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CourtBookingService/internal/domain"
)

const tracerName = "github.com/m04kA/SMC-CourtBookingService/internal/rules"

// Processor проверяет заявку всеми зарегистрированными правилами
type Processor struct {
	rules   []Rule
	timeout time.Duration
	metrics Metrics
	logger  Logger
	tracer  trace.Tracer
}

type Option func(*Processor)

// WithRuleTimeout ограничивает время проверки одного правила (0 = без ограничения)
func WithRuleTimeout(timeout time.Duration) Option {
	return func(p *Processor) { p.timeout = timeout }
}

func WithMetrics(m Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

func NewProcessor(rules []Rule, logger Logger, opts ...Option) *Processor {
	p := &Processor{
		rules:  make([]Rule, 0, len(rules)),
		logger: logger,
		tracer: otel.Tracer(tracerName),
	}
	for _, r := range rules {
		if r != nil {
			p.rules = append(p.rules, r)
		}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Evaluate проверяет все правила параллельно и возвращает нарушения в порядке
// регистрации (общие правила, затем scoped), независимо от порядка завершения.
// Ошибка любого правила означает ошибку всей проверки
func (p *Processor) Evaluate(ctx context.Context, req domain.CourtBookingRequest, scoped ...Rule) ([]domain.RuleViolation, error) {
	ctx, span := p.tracer.Start(ctx, "EvaluateRules", trace.WithAttributes(
		attribute.Int64("court.id", req.CourtID),
		attribute.Int64("member.id", req.MemberID),
	))
	defer span.End()

	rules := p.rules
	if len(scoped) > 0 {
		rules = make([]Rule, 0, len(p.rules)+len(scoped))
		rules = append(rules, p.rules...)
		for _, r := range scoped {
			if r != nil {
				rules = append(rules, r)
			}
		}
	}

	complies := make([]bool, len(rules))
	g, gctx := errgroup.WithContext(ctx)
	for i, rule := range rules {
		g.Go(func() error {
			ruleCtx, cancel := p.ruleContext(gctx)
			defer cancel()

			ok, err := rule.CompliesWithRule(ruleCtx, req)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrRuleFailed, rule.Name(), err)
			}
			complies[i] = ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.logger.Error("EvaluateRules: court=%d member=%d: %v", req.CourtID, req.MemberID, err)
		return nil, err
	}

	var violations []domain.RuleViolation
	for i, ok := range complies {
		if ok {
			continue
		}
		violations = append(violations, domain.RuleViolation{
			Rule:    rules[i].Name(),
			Message: rules[i].ErrorMessage(),
		})
		if p.metrics != nil {
			p.metrics.IncRuleViolation(rules[i].Name())
		}
	}

	span.SetAttributes(attribute.Int("rules.violations", len(violations)))
	return violations, nil
}

func (p *Processor) ruleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}
