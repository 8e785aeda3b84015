package agent

import (
	"fmt"
	"strings"

	"github.com/nlpodyssey/openai-agents-go/agents"
	"github.com/openai/openai-go/v2/packages/param"

	"StockScope/internal/chart"
	"StockScope/internal/model"
)

const visualizerInstructionsFmt = `You are a data visualization specialist for financial markets. A query against the stock database has already been executed; its result is the data every render tool will draw from.

Available chart kinds:
%s

Pick the one or two kinds that best answer the user's request and call their render tools. Use render_comparative only when the result contains a symbol column with multiple symbols. Give each chart a short caption describing what it shows. After rendering, reply with a one-paragraph summary of the visualizations.`

// newVisualizer builds the chart-selection agent: it picks renderers for the
// session's QueryResult and produces captions.
func newVisualizer(modelOpt param.Opt[agents.AgentModel], sess *Session, r *chart.Renderer) *agents.Agent {
	catalog := make([]string, len(model.ChartKinds))
	tools := make([]agents.Tool, len(model.ChartKinds))
	for i, kind := range model.ChartKinds {
		catalog[i] = fmt.Sprintf("- %s: %s", kind, renderToolDescriptions[kind])
		tools[i] = renderTool(kind, sess, r)
	}

	return agents.New("VisualizationSpecialist").
		WithInstructions(fmt.Sprintf(visualizerInstructionsFmt, strings.Join(catalog, "\n"))).
		WithTools(tools...).
		WithModelOpt(modelOpt)
}
