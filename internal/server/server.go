// Package server exposes the main page, reports and calculators over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"fjacquet/spend-insights/internal/container"
	"fjacquet/spend-insights/internal/logging"

	"github.com/gorilla/mux"
)

const shutdownTimeout = 5 * time.Second

// WeekdayReportJob names the scheduled weekday report.
const WeekdayReportJob = "weekday-report"

// Server is the HTTP API.
type Server struct {
	c         *container.Container
	router    *mux.Router
	scheduler *Scheduler
	logger    logging.Logger
}

// New builds the server and registers its routes and scheduled jobs.
func New(c *container.Container) (*Server, error) {
	s := &Server{
		c:         c,
		router:    mux.NewRouter(),
		scheduler: NewScheduler(c.GetLogger()),
		logger:    c.GetLogger(),
	}
	s.routes()

	if spec := c.GetConfig().Server.ReportSchedule; spec != "" {
		if err := s.scheduler.Add(spec, WeekdayReportJob, s.weekdayReportJob); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func (s *Server) routes() {
	s.router.Use(RequestID, Recovery(s.logger), Logger(s.logger))

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/main-page", s.handleMainPage).Methods(http.MethodGet)
	api.HandleFunc("/main-page", s.handleMainPageRecords).Methods(http.MethodPost)
	api.HandleFunc("/ledgers", s.handleListLedgers).Methods(http.MethodGet)
	api.HandleFunc("/reports", s.handleListReports).Methods(http.MethodGet)
	api.HandleFunc("/reports/category", s.handleCategoryReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/weekday", s.handleWeekdayReport).Methods(http.MethodGet)
	api.HandleFunc("/reports/{name}", s.handleDownloadReport).Methods(http.MethodGet)
	api.HandleFunc("/cashback", s.handleCashback).Methods(http.MethodGet)
	api.HandleFunc("/invest", s.handleInvest).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handleGetSettings).Methods(http.MethodGet)
	api.HandleFunc("/settings", s.handlePutSettings).Methods(http.MethodPut)
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Scheduler returns the background job scheduler.
func (s *Server) Scheduler() *Scheduler {
	return s.scheduler
}

func (s *Server) weekdayReportJob() error {
	_, _, err := s.c.GetReportRunner().Weekday(s.c.LedgerSource(""), time.Time{})
	return err
}

// Run serves on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.c.GetConfig().Server.Address
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	s.scheduler.Start()
	defer func() { <-s.scheduler.Stop().Done() }()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", logging.F("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
