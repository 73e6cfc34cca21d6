package grpc

import (
	"context"
	"time"

	"github.com/DRSN-tech/storefront-backend/internal/usecase"
	"github.com/DRSN-tech/storefront-backend/pkg/jitter"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// StorefrontService — имя сервиса, под которым публикуется статус хранилища.
// Пустое имя описывает процесс в целом и всегда SERVING, пока процесс жив.
const StorefrontService = "storefront.v1.Storefront"

// HealthSync периодически переносит результат DiagnosticsUC.Healthy в health-сервер.
type HealthSync struct {
	health   *health.Server
	diagUC   usecase.DiagnosticsUC
	interval time.Duration
	logger   logger.Logger
	last     healthpb.HealthCheckResponse_ServingStatus
}

func NewHealthSync(h *health.Server, diagUC usecase.DiagnosticsUC, interval time.Duration, logger logger.Logger) *HealthSync {
	return &HealthSync{
		health:   h,
		diagUC:   diagUC,
		interval: interval,
		logger:   logger,
		last:     healthpb.HealthCheckResponse_UNKNOWN,
	}
}

// Run обновляет статус до отмены ctx. Интервалы между проверками размыты джиттером.
func (h *HealthSync) Run(ctx context.Context) {
	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.syncOnce(ctx)

	for {
		timer := time.NewTimer(jitter.Duration(h.interval, jitter.DefaultJitter))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			h.syncOnce(ctx)
		}
	}
}

func (h *HealthSync) syncOnce(ctx context.Context) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if h.diagUC.Healthy(ctx) {
		status = healthpb.HealthCheckResponse_SERVING
	}

	if status != h.last {
		h.logger.Infof("health status of %s changed from %s to %s", StorefrontService, h.last, status)
		h.last = status
	}

	h.health.SetServingStatus(StorefrontService, status)
}
