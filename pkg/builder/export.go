package builder

import (
	"github.com/joeydtaylor/electrode/pkg/internal/export"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
)

type CorrelationRow = export.CorrelationRow

type OrderRow = export.OrderRow

func NewParquetExporter(options ...types.Option[*export.Exporter]) *export.Exporter {
	return export.NewExporter(options...)
}

func ExporterWithLogger(loggers ...types.Logger) types.Option[*export.Exporter] {
	return export.WithLogger(loggers...)
}

// ExporterWithCompression selects "snappy", "zstd", "gzip" or "none".
func ExporterWithCompression(name string) types.Option[*export.Exporter] {
	return export.WithCompression(name)
}
