package builder

import (
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/dashboard"
	"github.com/joeydtaylor/electrode/pkg/internal/store"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/view"
)

type ViewContext = view.Context

type ViewRequest = view.Request

type ViewResult = view.Result

type ViewRange = view.Range

type ViewMode = types.ViewMode

const (
	ViewSignal      = types.ViewSignal
	ViewImage       = types.ViewImage
	ViewCorrelation = types.ViewCorrelation
)

// NewViewContext validates a loaded bundle for rendering.
func NewViewContext(b *store.Bundle) (*view.Context, error) {
	return view.NewContext(b)
}

// Render draws one view; see view.Render.
func Render(c *view.Context, req view.Request) view.Result {
	return view.Render(c, req)
}

func NewDashboard(vc *view.Context, options ...types.Option[*dashboard.Server]) *dashboard.Server {
	return dashboard.NewServer(vc, options...)
}

func DashboardWithLogger(loggers ...types.Logger) types.Option[*dashboard.Server] {
	return dashboard.WithLogger(loggers...)
}

func DashboardWithAddress(address string) types.Option[*dashboard.Server] {
	return dashboard.WithAddress(address)
}

func DashboardWithTimeout(timeout time.Duration) types.Option[*dashboard.Server] {
	return dashboard.WithTimeout(timeout)
}

func DashboardWithTitle(title string) types.Option[*dashboard.Server] {
	return dashboard.WithTitle(title)
}

func DashboardWithHeader(key, value string) types.Option[*dashboard.Server] {
	return dashboard.WithHeader(key, value)
}
