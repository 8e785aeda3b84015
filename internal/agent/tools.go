package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"StockScope/internal/chart"
	"StockScope/internal/model"
	"StockScope/internal/search"
	"StockScope/internal/store"
)

// describeSchemaTool lets the analyst re-read the database structure.
func describeSchemaTool(st *store.Store) agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "describe_schema",
		Description: "Get the database schema: tables, columns, types, and which symbols have data.",
		ParamsJSONSchema: map[string]any{
			"title":                "describe_schema_args",
			"type":                 "object",
			"required":             []string{},
			"additionalProperties": false,
			"properties":           map[string]any{},
		},
		OnInvokeTool: func(_ context.Context, _ string) (any, error) {
			return st.DescribeSchema()
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}

type lookupSymbolArgs struct {
	Query string `json:"query"`
}

// lookupSymbolTool resolves loose company references to tickers using the
// local full-text index, saving the model from guessing symbols.
func lookupSymbolTool(idx *search.Index) agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "lookup_symbol",
		Description: "Find stock ticker symbols by company name or partial ticker, e.g. \"Apple\" -> AAPL.",
		ParamsJSONSchema: map[string]any{
			"title":                "lookup_symbol_args",
			"type":                 "object",
			"required":             []string{"query"},
			"additionalProperties": false,
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Company name or ticker fragment to search for.",
				},
			},
		},
		OnInvokeTool: func(_ context.Context, arguments string) (any, error) {
			var args lookupSymbolArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, err
			}
			stocks, err := idx.Lookup(args.Query, 5)
			if err != nil {
				return nil, err
			}
			if len(stocks) == 0 {
				return fmt.Sprintf("no stocks match %q", args.Query), nil
			}
			lines := make([]string, len(stocks))
			for i, st := range stocks {
				lines[i] = fmt.Sprintf("%s: %s", st.Symbol, st.CompanyName)
			}
			return strings.Join(lines, "\n"), nil
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}

type runSQLArgs struct {
	SQL string `json:"sql"`
}

// runSQLTool executes a read-only SELECT against the schema store, parks the
// QueryResult in the session for the visualizer, and returns a preview.
func runSQLTool(st *store.Store, sess *Session) agents.FunctionTool {
	return agents.FunctionTool{
		Name:        "run_sql",
		Description: "Execute a single read-only SQL SELECT statement against the stock database and get the resulting rows.",
		ParamsJSONSchema: map[string]any{
			"title":                "run_sql_args",
			"type":                 "object",
			"required":             []string{"sql"},
			"additionalProperties": false,
			"properties": map[string]any{
				"sql": map[string]any{
					"type":        "string",
					"description": "The SELECT statement to run. Mutating statements are rejected.",
				},
			},
		},
		OnInvokeTool: func(ctx context.Context, arguments string) (any, error) {
			var args runSQLArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, err
			}
			res, err := st.Execute(ctx, args.SQL)
			if err != nil {
				return nil, err
			}
			sess.SetResult(args.SQL, res)
			return sess.Preview(10), nil
		},
		StrictJSONSchema: param.NewOpt(true),
	}
}

type renderArgs struct {
	Symbol  string `json:"symbol"`
	Title   string `json:"title"`
	Caption string `json:"caption"`
	Windows []int  `json:"windows"`
}

var renderToolDescriptions = map[model.ChartKind]string{
	model.ChartTrend:         "Create a line chart showing the stock's closing price trend over time.",
	model.ChartCandlestick:   "Create a candlestick chart showing daily open/high/low/close bodies.",
	model.ChartVolume:        "Create a bar chart showing daily trading volume.",
	model.ChartPriceVolume:   "Create a combined chart with the price line and volume bars on a secondary axis.",
	model.ChartMovingAverage: "Create a chart overlaying the closing price with simple moving averages (default windows 20 and 50 days).",
	model.ChartComparative:   "Create a chart comparing several symbols, each normalized to percentage change from its first value. The query result must include a symbol column.",
}

// renderTool builds the function tool for one chart kind. All render tools
// read the session's QueryResult; render failures abort the run, matching
// the fail-fast renderer contract.
func renderTool(kind model.ChartKind, sess *Session, r *chart.Renderer) agents.FunctionTool {
	properties := map[string]any{
		"title":   map[string]any{"type": "string", "description": "Optional chart title."},
		"caption": map[string]any{"type": "string", "description": "One-sentence caption for the report."},
	}
	var required []string
	if kind != model.ChartComparative {
		properties["symbol"] = map[string]any{"type": "string", "description": "The ticker symbol the chart is about."}
		required = append(required, "symbol")
	}
	if kind == model.ChartMovingAverage {
		properties["windows"] = map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "integer"},
			"description": "Moving-average windows in days. Defaults to [20, 50].",
		}
	}

	return agents.FunctionTool{
		Name:        "render_" + string(kind),
		Description: renderToolDescriptions[kind],
		ParamsJSONSchema: map[string]any{
			"title":                "render_" + string(kind) + "_args",
			"type":                 "object",
			"required":             required,
			"additionalProperties": false,
			"properties":           properties,
		},
		OnInvokeTool: func(_ context.Context, arguments string) (any, error) {
			var args renderArgs
			if err := json.Unmarshal([]byte(arguments), &args); err != nil {
				return nil, err
			}

			res := sess.Result()
			var (
				artifact *model.ChartArtifact
				err      error
			)
			switch kind {
			case model.ChartTrend:
				artifact, err = r.Trend(res, args.Symbol, args.Title)
			case model.ChartCandlestick:
				artifact, err = r.Candlestick(res, args.Symbol, args.Title)
			case model.ChartVolume:
				artifact, err = r.Volume(res, args.Symbol, args.Title)
			case model.ChartPriceVolume:
				artifact, err = r.PriceVolume(res, args.Symbol, args.Title)
			case model.ChartMovingAverage:
				artifact, err = r.MovingAverage(res, args.Symbol, args.Title, args.Windows)
			case model.ChartComparative:
				artifact, err = r.Comparative(res, args.Title)
			default:
				err = &chart.RenderError{Kind: kind, Reason: "unknown chart kind"}
			}
			if err != nil {
				return nil, err
			}

			sess.AddArtifact(*artifact, args.Caption)
			return fmt.Sprintf("%s chart written to %s", kind, artifact.FilePath), nil
		},
		StrictJSONSchema: param.NewOpt(false),
	}
}
