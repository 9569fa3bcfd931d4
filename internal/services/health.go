package services

import (
	"context"
	"time"

	"github.com/romario-developer/despesas-pwa/internal/logging"
)

const (
	pathHealth = "/api/health"

	// HealthUnavailableMessage is shown while the backend does not answer.
	HealthUnavailableMessage = "API indisponível ou URL da API incorreta"

	healthProbeTimeout = 3 * time.Second
)

// HealthStatus is the outcome of one probe.
type HealthStatus struct {
	Available bool
	Err       error
	At        time.Time
}

type HealthService interface {
	Check(ctx context.Context) error
	// Watch probes immediately and then every interval until ctx is done,
	// calling fn with the first result and again on every change.
	Watch(ctx context.Context, interval time.Duration, fn func(HealthStatus))
}

type healthService struct {
	api    API
	logger logging.Logger
}

func NewHealthService(api API, logger logging.Logger) HealthService {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &healthService{api: api, logger: logger.With(logging.FieldComponent, logging.ComponentHealth)}
}

func (s *healthService) Check(ctx context.Context) error {
	_, err := s.api.Get(ctx, pathHealth, nil)
	return err
}

func (s *healthService) Watch(ctx context.Context, interval time.Duration, fn func(HealthStatus)) {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	var last *bool
	probe := func() {
		pctx, cancel := context.WithTimeout(ctx, healthProbeTimeout)
		err := s.Check(pctx)
		cancel()
		if ctx.Err() != nil {
			return
		}

		available := err == nil
		if last != nil && *last == available {
			return
		}
		last = &available

		if available {
			s.logger.Info(ctx, "api available")
		} else {
			s.logger.Warn(ctx, "api unavailable", logging.FieldError, err)
		}
		fn(HealthStatus{Available: available, Err: err, At: time.Now()})
	}

	probe()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			probe()
		case <-ctx.Done():
			return
		}
	}
}
