package dashboard

import (
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

// WithLogger attaches one or more loggers to the server.
func WithLogger(loggers ...types.Logger) types.Option[*Server] {
	return func(s *Server) {
		s.ConnectLogger(loggers...)
	}
}

// WithAddress sets the listen address (default 127.0.0.1:8050).
func WithAddress(address string) types.Option[*Server] {
	return func(s *Server) {
		s.SetAddress(address)
	}
}

// WithTimeout sets the read/write timeout for requests.
func WithTimeout(timeout time.Duration) types.Option[*Server] {
	return func(s *Server) {
		s.SetTimeout(timeout)
	}
}

// WithHeader adds a header to every response.
func WithHeader(key, value string) types.Option[*Server] {
	return func(s *Server) {
		s.AddHeader(key, value)
	}
}

// WithTitle sets the page title.
func WithTitle(title string) types.Option[*Server] {
	return func(s *Server) {
		s.SetTitle(title)
	}
}

// WithComponentMetadata sets the server name and id.
func WithComponentMetadata(name, id string) types.Option[*Server] {
	return func(s *Server) {
		s.SetComponentMetadata(name, id)
	}
}
