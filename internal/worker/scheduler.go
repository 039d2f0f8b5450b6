package worker

import (
	"context"
	"log/slog"
	"time"

	"marketing-service/internal/services"

	"github.com/go-co-op/gocron"
)

// Scheduler runs the service's periodic housekeeping: flagging overdue
// invoices once a day.
type Scheduler struct {
	scheduler      *gocron.Scheduler
	invoiceService *services.InvoiceService
}

func NewScheduler(invoiceService *services.InvoiceService) *Scheduler {
	return &Scheduler{
		scheduler:      gocron.NewScheduler(time.UTC),
		invoiceService: invoiceService,
	}
}

// Start registers the jobs and begins running them asynchronously.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(1).Day().At("02:00").Do(s.flagOverdueInvoices)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	slog.Info("Scheduler started")
	return nil
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) flagOverdueInvoices() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	flagged, err := s.invoiceService.FlagOverdueInvoices(ctx)
	if err != nil {
		slog.Error("failed to flag overdue invoices", "error", err)
		return
	}
	if flagged > 0 {
		slog.Info("Flagged overdue invoices", "count", flagged)
	}
}
