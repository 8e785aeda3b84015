package agent

import (
	"fmt"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"StockScope/internal/search"
	"StockScope/internal/store"
)

const analystInstructionsFmt = `You are an expert financial data analyst working against a local SQLite stock database.

%s

Given the user's request:
1. If the request names companies rather than tickers, resolve them with lookup_symbol.
2. Write one read-only SELECT and execute it with run_sql. Always select the date column plus the price/volume columns a chart would need (open, high, low, close, volume as appropriate). When the request compares multiple stocks, also select the symbol column and filter with an IN clause. Order by date.
3. Reply with a brief, readable analysis of the query result: what was queried, the time window, and anything notable in the numbers.

Do not invent data. If the database holds nothing relevant, run the best-matching query anyway and say so in the analysis.`

// newAnalyst builds the query-planning agent: it turns the natural-language
// request into SQL, executes it, and returns a short rationale.
func newAnalyst(modelOpt param.Opt[agents.AgentModel], schema string, st *store.Store, idx *search.Index, sess *Session) *agents.Agent {
	return agents.New("DataAnalyst").
		WithInstructions(fmt.Sprintf(analystInstructionsFmt, schema)).
		WithTools(lookupSymbolTool(idx), describeSchemaTool(st), runSQLTool(st, sess)).
		WithModelOpt(modelOpt)
}
