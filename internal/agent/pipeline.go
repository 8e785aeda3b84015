package agent

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"StockScope/internal/chart"
	"StockScope/internal/model"
	"StockScope/internal/search"
	"StockScope/internal/store"
)

// State names a pipeline stage. A request walks
// Idle -> Planning -> Executing -> Rendering -> Reporting -> Idle;
// any failure moves to Failed for that request, is surfaced in the report,
// and the pipeline returns to Idle for the next request.
type State string

const (
	StateIdle      State = "idle"
	StatePlanning  State = "planning"
	StateExecuting State = "executing"
	StateRendering State = "rendering"
	StateReporting State = "reporting"
	StateFailed    State = "failed"
)

// RunReport is the outcome of one request.
type RunReport struct {
	Request   string
	StartedAt time.Time
	Rationale string // analyst's natural-language analysis
	SQL       string
	Summary   string // visualizer's closing summary
	Artifacts []model.ChartArtifact
	Captions  []string
	IndexPath string
	Failed    bool
	Err       error
}

// Pipeline coordinates the two agent roles for one request at a time.
// Requests are processed sequentially; no state is shared between them
// except the (read-only) store and symbol index.
type Pipeline struct {
	Store      *store.Store
	Index      *search.Index
	ChartDir   string
	ReportPath string
	Model      param.Opt[agents.AgentModel]
	Timeout    time.Duration
	MaxTurns   uint64

	// renderer is shared across requests so artifact sequence numbers never
	// restart: a second run for the same symbol and kind gets a fresh file
	// instead of overwriting one the report already links to.
	renderer *chart.Renderer
	state    State
}

// New creates a pipeline with the model referenced by name.
func New(st *store.Store, idx *search.Index, chartDir, reportPath, modelName string, timeout time.Duration, maxTurns uint64) *Pipeline {
	return &Pipeline{
		Store:      st,
		Index:      idx,
		ChartDir:   chartDir,
		ReportPath: reportPath,
		Model:      param.NewOpt(agents.NewAgentModelName(modelName)),
		Timeout:    timeout,
		MaxTurns:   maxTurns,
		renderer:   chart.NewRenderer(chartDir),
		state:      StateIdle,
	}
}

// State returns the pipeline's current stage.
func (p *Pipeline) State() State {
	if p.state == "" {
		return StateIdle
	}
	return p.state
}

func (p *Pipeline) setState(s State) {
	p.state = s
	log.Printf("[INFO] pipeline state: %s", s)
}

// Process runs one request through the full pipeline and appends its section
// to the report. A failure fails this request only: it is written to the
// report as a readable explanation and returned, and the pipeline is ready
// for the next request.
func (p *Pipeline) Process(ctx context.Context, request string) (*RunReport, error) {
	rep := &RunReport{Request: request, StartedAt: time.Now()}

	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	sess := NewSession()
	if p.renderer == nil {
		p.renderer = chart.NewRenderer(p.ChartDir)
	}
	runner := agents.Runner{Config: agents.RunConfig{MaxTurns: p.MaxTurns, TracingDisabled: true}}

	p.setState(StatePlanning)
	schema, err := p.Store.DescribeSchema()
	if err != nil {
		return p.fail(rep, err)
	}
	analyst := newAnalyst(p.Model, schema, p.Store, p.Index, sess)
	ares, err := runner.Run(ctx, analyst, request)
	if err != nil {
		return p.fail(rep, p.classify(ctx, "planning", err))
	}
	rep.Rationale = fmt.Sprint(ares.FinalOutput)

	p.setState(StateExecuting)
	if sess.Result() == nil {
		return p.fail(rep, &ServiceError{Stage: "planning", Err: errors.New("analyst completed without executing a query")})
	}
	rep.SQL = sess.SQL()

	p.setState(StateRendering)
	visualizer := newVisualizer(p.Model, sess, p.renderer)
	input := fmt.Sprintf("Original request: %s\n\nQuery result:\n%s", request, sess.Preview(20))
	vres, err := runner.Run(ctx, visualizer, input)
	if err != nil {
		return p.fail(rep, p.classify(ctx, "rendering", err))
	}
	rep.Summary = fmt.Sprint(vres.FinalOutput)

	artifacts, captions := sess.Artifacts()
	if len(artifacts) == 0 {
		return p.fail(rep, &ServiceError{Stage: "rendering", Err: errors.New("visualizer completed without producing a chart")})
	}
	rep.Artifacts, rep.Captions = artifacts, captions

	p.setState(StateReporting)
	indexPath, err := chart.WriteIndex(p.ChartDir, artifacts, captions)
	if err != nil {
		return p.fail(rep, err)
	}
	rep.IndexPath = indexPath
	if err := appendReport(p.ReportPath, rep); err != nil {
		return p.fail(rep, err)
	}

	p.setState(StateIdle)
	return rep, nil
}

// fail marks the request failed, records it in the report, and resets the
// pipeline for the next request.
func (p *Pipeline) fail(rep *RunReport, err error) (*RunReport, error) {
	rep.Failed = true
	rep.Err = err
	p.setState(StateFailed)
	log.Printf("[ERROR] request failed: %v", err)
	if werr := appendReport(p.ReportPath, rep); werr != nil {
		log.Printf("[WARN] could not write failure report: %v", werr)
	}
	p.setState(StateIdle)
	return rep, err
}

// classify maps a run error onto the error taxonomy. Query and render
// failures keep their type; everything else (including a timeout) is a
// ServiceError for the given stage.
func (p *Pipeline) classify(ctx context.Context, stage string, err error) error {
	var qe *store.QueryError
	if errors.As(err, &qe) {
		return qe
	}
	var re *chart.RenderError
	if errors.As(err, &re) {
		return re
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &ServiceError{Stage: stage, Err: fmt.Errorf("request timed out after %s", p.Timeout)}
	}
	return &ServiceError{Stage: stage, Err: err}
}
