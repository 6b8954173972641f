// Package dashboard serves the interactive viewer over a loopback HTTP server.
// Every request renders from the same immutable view.Context.
package dashboard

import (
	"net/http"
	"sync"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
	"github.com/joeydtaylor/electrode/pkg/internal/view"
)

const (
	// DefaultAddress is the loopback address the viewer listens on.
	DefaultAddress = "127.0.0.1:8050"
	defaultTimeout = 30 * time.Second
	pageTitle      = "Neural Recording Viewer"
)

// Server is the dashboard HTTP server.
type Server struct {
	componentMetadata types.ComponentMetadata

	address string
	timeout time.Duration
	headers map[string]string
	title   string

	view *view.Context

	loggers     []types.Logger
	loggersLock sync.Mutex

	server   *http.Server
	serverMu sync.Mutex
}

// NewServer creates a dashboard over vc.
func NewServer(vc *view.Context, options ...types.Option[*Server]) *Server {
	s := &Server{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "DASHBOARD",
		},
		address: DefaultAddress,
		timeout: defaultTimeout,
		headers: make(map[string]string),
		title:   pageTitle,
		view:    vc,
		loggers: make([]types.Logger, 0),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// SetAddress configures the listen address.
func (s *Server) SetAddress(address string) {
	if address != "" {
		s.address = address
	}
}

// Address returns the configured listen address.
func (s *Server) Address() string { return s.address }

// SetTimeout sets read and write timeouts.
func (s *Server) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		s.timeout = timeout
	}
}

// AddHeader adds a header to every response.
func (s *Server) AddHeader(key, value string) {
	s.headers[key] = value
}

// SetTitle sets the page title.
func (s *Server) SetTitle(title string) {
	if title != "" {
		s.title = title
	}
}

// GetComponentMetadata returns metadata (ID, Name, Type).
func (s *Server) GetComponentMetadata() types.ComponentMetadata {
	return s.componentMetadata
}

// SetComponentMetadata sets Name and ID.
func (s *Server) SetComponentMetadata(name string, id string) {
	s.componentMetadata.Name = name
	s.componentMetadata.ID = id
}

// ConnectLogger attaches logger(s).
func (s *Server) ConnectLogger(loggers ...types.Logger) {
	s.loggersLock.Lock()
	defer s.loggersLock.Unlock()
	for _, l := range loggers {
		if l != nil {
			s.loggers = append(s.loggers, l)
		}
	}
}

// NotifyLoggers logs msg to all attached loggers at or below level.
func (s *Server) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	s.loggersLock.Lock()
	loggers := make([]types.Logger, len(s.loggers))
	copy(loggers, s.loggers)
	s.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		}
	}
}
