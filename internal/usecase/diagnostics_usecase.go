package usecase

import (
	"context"
	"fmt"

	"github.com/DRSN-tech/storefront-backend/pkg/e"
	"github.com/DRSN-tech/storefront-backend/pkg/logger"
)

const (
	maxReportedCollections = 10
	maxReportedErrorLen    = 50
)

// DiagnosticsUseCase собирает отчёт о состоянии хранилища. Сам отчёт никогда не завершается ошибкой.
type DiagnosticsUseCase struct {
	inspector StoreInspector
	settings  DiagnosticsSettings
	logger    logger.Logger
}

// NewDiagnosticsUC создаёт use case диагностики. inspector == nil означает, что хранилище не инициализировано.
func NewDiagnosticsUC(inspector StoreInspector, settings DiagnosticsSettings, logger logger.Logger) *DiagnosticsUseCase {
	return &DiagnosticsUseCase{
		inspector: inspector,
		settings:  settings,
		logger:    logger,
	}
}

// Diagnose проверяет подключение и список коллекций. Паники внутри проверки превращаются в статус ошибки.
func (d *DiagnosticsUseCase) Diagnose(ctx context.Context) (report *DiagnosticsReport) {
	report = &DiagnosticsReport{
		Backend:          BackendRunning,
		Database:         DatabaseNotInitialized,
		DatabaseURL:      presence(d.settings.URLSet),
		DatabaseName:     presence(d.settings.NameSet),
		ConnectionStatus: ConnectionNotConnected,
		Collections:      []string{},
		StoreDriver:      d.settings.StoreDriver,
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Warnf("Diagnostics recovered from panic: %v", r)
			report.Database = databaseError(fmt.Sprint(r))
			report.Collections = []string{}
		}
	}()

	if d.inspector == nil {
		return report
	}

	if err := d.inspector.Ping(ctx); err != nil {
		d.logger.Warnf("Diagnostics ping failed: %v", err)
		report.Database = databaseError(e.Describe(err))
		return report
	}
	report.ConnectionStatus = ConnectionConnected

	names, err := d.inspector.ListCollections(ctx)
	if err != nil {
		d.logger.Warnf("Diagnostics list collections failed: %v", err)
		report.Database = databaseError(e.Describe(err))
		return report
	}

	if len(names) > maxReportedCollections {
		names = names[:maxReportedCollections]
	}
	report.Collections = append(report.Collections, names...)
	report.Database = DatabaseWorking

	return report
}

// Healthy сообщает, отвечает ли хранилище на ping.
func (d *DiagnosticsUseCase) Healthy(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	return d.inspector != nil && d.inspector.Ping(ctx) == nil
}

func databaseError(msg string) string {
	return DatabaseErrorPrefix + e.Truncate(msg, maxReportedErrorLen)
}

func presence(set bool) string {
	if set {
		return EnvSet
	}

	return EnvNotSet
}
