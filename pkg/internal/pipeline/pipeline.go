// Package pipeline runs the offline preprocessing stages in sequence and
// persists the output of each stage before the next one starts.
package pipeline

import (
	"sync"
	"time"

	"github.com/joeydtaylor/electrode/pkg/internal/cluster"
	"github.com/joeydtaylor/electrode/pkg/internal/correlation"
	"github.com/joeydtaylor/electrode/pkg/internal/export"
	"github.com/joeydtaylor/electrode/pkg/internal/loader"
	"github.com/joeydtaylor/electrode/pkg/internal/types"
	"github.com/joeydtaylor/electrode/pkg/internal/utils"
)

// Stage names used for meter timers and log events.
const (
	StageLoad      = "load"
	StageProfile   = "profile"
	StageCorrelate = "correlate"
	StageCluster   = "cluster"
	StageExport    = "export"
)

// Result summarises a completed run.
type Result struct {
	Channels          int
	Samples           int
	SampleRate        int
	Formulas          []types.Formula
	Orders            int
	ReusedSignals     bool
	ReusedCorrelation bool
	Exported          export.Summary
	Stages            map[string]time.Duration
	Elapsed           time.Duration
}

// Pipeline wires a loader, a correlation engine and an orderer to an artifact store.
type Pipeline struct {
	componentMetadata types.ComponentMetadata
	loggers           []types.Logger
	loggersLock       sync.Mutex

	loader   *loader.Loader
	engine   *correlation.Engine
	orderer  *cluster.Orderer
	store    types.ArtifactStore
	meter    types.Meter
	exporter *export.Exporter

	reuseSignals     bool
	reuseCorrelation bool
}

// NewPipeline creates a pipeline with default components. A store must be supplied with WithStore.
func NewPipeline(options ...types.Option[*Pipeline]) *Pipeline {
	p := &Pipeline{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "PIPELINE",
		},
		loggers: make([]types.Logger, 0),
		loader:  loader.NewLoader(),
		engine:  correlation.NewEngine(),
		orderer: cluster.NewOrderer(),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

// GetComponentMetadata returns the pipeline metadata.
func (p *Pipeline) GetComponentMetadata() types.ComponentMetadata { return p.componentMetadata }

// SetComponentMetadata updates name and id, keeping the type.
func (p *Pipeline) SetComponentMetadata(name, id string) {
	p.componentMetadata.Name = name
	p.componentMetadata.ID = id
}

// ConnectLogger attaches loggers to the pipeline and every stage it owns.
func (p *Pipeline) ConnectLogger(loggers ...types.Logger) {
	p.loggersLock.Lock()
	for _, l := range loggers {
		if l != nil {
			p.loggers = append(p.loggers, l)
		}
	}
	p.loggersLock.Unlock()

	p.loader.ConnectLogger(loggers...)
	p.engine.ConnectLogger(loggers...)
	p.orderer.ConnectLogger(loggers...)
}
