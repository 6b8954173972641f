package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/logschema"
)

// Handler returns the routed handler without starting a listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/meta", s.handleMeta)
	mux.HandleFunc("/api/figure", s.handleFigure)
	mux.HandleFunc("/api/clamp", s.handleClamp)
	mux.HandleFunc("/api/channels", s.handleChannels)
	mux.HandleFunc("/export/signal.png", s.handleSignalPNG)
	return s.withHeaders(mux)
}

func (s *Server) withHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		for key, val := range s.headers {
			w.Header().Set(key, val)
		}
		start := time.Now()
		next.ServeHTTP(w, r)
		s.NotifyLoggers(types.DebugLevel, "request served",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "request",
			"path", r.URL.Path,
			"elapsed", time.Since(start).String(),
		)
	})
}

// Serve listens on the configured address until ctx is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	s.serverMu.Lock()
	s.server = &http.Server{
		Addr:         s.address,
		Handler:      s.Handler(),
		ReadTimeout:  s.timeout,
		WriteTimeout: s.timeout,
	}
	srv := s.server
	s.serverMu.Unlock()

	errChan := make(chan error, 1)
	go func() {
		s.NotifyLoggers(types.InfoLevel, "dashboard listening",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "serve",
			"address", "http://"+s.address+"/",
		)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		s.NotifyLoggers(types.WarnLevel, "context cancelled; shutting down dashboard",
			logschema.FieldComponent, s.componentMetadata,
			logschema.FieldEvent, "shutdown",
		)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
		return ctx.Err()
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.NotifyLoggers(types.ErrorLevel, "dashboard server error",
				logschema.FieldComponent, s.componentMetadata,
				logschema.FieldEvent, "serve",
				logschema.FieldError, err,
			)
			return err
		}
		return nil
	}
}
