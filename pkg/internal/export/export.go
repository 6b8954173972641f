// Package export writes the correlation matrices and channel orders as
// Parquet tables for analysis outside the dashboard.
package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
	"github.com/joeydtaylor/electrode/pkg/logschema"
	parquet "github.com/parquet-go/parquet-go"
)

const (
	CorrelationsName = "correlations.parquet"
	OrdersName       = "orders.parquet"
)

// CorrelationRow is one upper-triangle entry of a correlation matrix. Channels are 0-based.
type CorrelationRow struct {
	Formula  string  `parquet:"formula,dict"`
	ChannelA int32   `parquet:"channel_a"`
	ChannelB int32   `parquet:"channel_b"`
	Value    float64 `parquet:"value"`
}

// OrderRow places one channel at one position of an ordering.
type OrderRow struct {
	Formula  string `parquet:"formula,dict"`
	Method   string `parquet:"method,dict"`
	Position int32  `parquet:"position"`
	Channel  int32  `parquet:"channel"`
}

// Summary reports what Export wrote.
type Summary struct {
	CorrelationRows int
	OrderRows       int
}

// Exporter writes Parquet tables into an artifact store.
type Exporter struct {
	componentMetadata types.ComponentMetadata
	loggers           []types.Logger
	loggersLock       sync.Mutex
	compression       string
}

// NewExporter creates an Exporter using snappy compression.
func NewExporter(options ...types.Option[*Exporter]) *Exporter {
	e := &Exporter{
		componentMetadata: types.ComponentMetadata{ID: utils.GenerateUniqueHash(), Type: "PARQUET_EXPORTER"},
		compression:       "snappy",
	}
	for _, opt := range options {
		opt(e)
	}
	return e
}

// WithLogger attaches loggers to the exporter.
func WithLogger(loggers ...types.Logger) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.loggersLock.Lock()
		defer e.loggersLock.Unlock()
		for _, l := range loggers {
			if l != nil {
				e.loggers = append(e.loggers, l)
			}
		}
	}
}

// Compressions lists the accepted Parquet codec names.
var Compressions = []string{"snappy", "zstd", "gzip", "lz4", "brotli", "none"}

// WithCompression selects one of Compressions.
func WithCompression(name string) types.Option[*Exporter] {
	return func(e *Exporter) {
		e.compression = strings.ToLower(strings.TrimSpace(name))
	}
}

func compressionOption(name string) (parquet.WriterOption, error) {
	switch name {
	case "", "snappy":
		return parquet.Compression(&parquet.Snappy), nil
	case "zstd":
		return parquet.Compression(&parquet.Zstd), nil
	case "gzip":
		return parquet.Compression(&parquet.Gzip), nil
	case "lz4":
		return parquet.Compression(&parquet.Lz4Raw), nil
	case "brotli":
		return parquet.Compression(&parquet.Brotli), nil
	case "none":
		return parquet.Compression(&parquet.Uncompressed), nil
	}
	return nil, fmt.Errorf("export: unknown compression %q", name)
}

// CorrelationRows flattens the upper triangles of matrices in formula order.
func CorrelationRows(matrices map[types.Formula]*types.CorrelationMatrix) []CorrelationRow {
	var rows []CorrelationRow
	for _, f := range types.Formulas() {
		c, ok := matrices[f]
		if !ok {
			continue
		}
		for i := 0; i < c.N; i++ {
			for j := i + 1; j < c.N; j++ {
				rows = append(rows, CorrelationRow{Formula: string(f), ChannelA: int32(i), ChannelB: int32(j), Value: c.At(i, j)})
			}
		}
	}
	return rows
}

// OrderRows flattens orders sorted by formula then method.
func OrderRows(orders map[types.OrderKey]types.ChannelOrder) []OrderRow {
	keys := make([]types.OrderKey, 0, len(orders))
	for k := range orders {
		keys = append(keys, k)
	}
	rank := func(k types.OrderKey) (int, int) {
		fi, mi := 0, 0
		for i, f := range types.Formulas() {
			if f == k.Formula {
				fi = i
			}
		}
		for i, m := range types.Methods() {
			if m == k.Method {
				mi = i
			}
		}
		return fi, mi
	}
	sort.Slice(keys, func(a, b int) bool {
		fa, ma := rank(keys[a])
		fb, mb := rank(keys[b])
		if fa != fb {
			return fa < fb
		}
		return ma < mb
	})

	var rows []OrderRow
	for _, k := range keys {
		for pos, ch := range orders[k] {
			rows = append(rows, OrderRow{Formula: string(k.Formula), Method: string(k.Method), Position: int32(pos), Channel: int32(ch)})
		}
	}
	return rows
}

// WriteRows encodes rows as one Parquet file.
func WriteRows[T any](w io.Writer, rows []T, compression string) error {
	opt, err := compressionOption(compression)
	if err != nil {
		return err
	}
	pw := parquet.NewGenericWriter[T](w, opt)
	if len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			pw.Close()
			return err
		}
	}
	return pw.Close()
}

// ReadRows decodes every row of a Parquet file.
func ReadRows[T any](data []byte) ([]T, error) {
	gr := parquet.NewGenericReader[T](bytes.NewReader(data))
	defer gr.Close()

	out := make([]T, 0, gr.NumRows())
	batch := make([]T, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Export writes correlations.parquet and orders.parquet into s.
func (e *Exporter) Export(ctx context.Context, s types.ArtifactStore, matrices map[types.Formula]*types.CorrelationMatrix, orders map[types.OrderKey]types.ChannelOrder) (Summary, error) {
	corrRows := CorrelationRows(matrices)
	if err := s.Write(ctx, CorrelationsName, func(w io.Writer) error {
		return WriteRows(w, corrRows, e.compression)
	}); err != nil {
		return Summary{}, fmt.Errorf("export: %s: %w", CorrelationsName, err)
	}

	orderRows := OrderRows(orders)
	if err := s.Write(ctx, OrdersName, func(w io.Writer) error {
		return WriteRows(w, orderRows, e.compression)
	}); err != nil {
		return Summary{}, fmt.Errorf("export: %s: %w", OrdersName, err)
	}

	summary := Summary{CorrelationRows: len(corrRows), OrderRows: len(orderRows)}
	e.notify(types.InfoLevel, "parquet export complete",
		logschema.FieldComponent, e.componentMetadata,
		logschema.FieldEvent, "export",
		"correlation_rows", summary.CorrelationRows,
		"order_rows", summary.OrderRows,
		"compression", e.compression,
	)
	return summary, nil
}

func (e *Exporter) notify(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	e.loggersLock.Lock()
	loggers := make([]types.Logger, len(e.loggers))
	copy(loggers, e.loggers)
	e.loggersLock.Unlock()
	for _, l := range loggers {
		if l.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			l.Debug(msg, keysAndValues...)
		case types.WarnLevel:
			l.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			l.Error(msg, keysAndValues...)
		default:
			l.Info(msg, keysAndValues...)
		}
	}
}
