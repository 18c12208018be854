package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/recon"
	"github.com/etnz/recon/docs"
	"github.com/etnz/recon/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:        "Facilitator",
		Description: ``,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is an operations analyst who just reconciled the trades of an Investment Manager,
			a Custodian and a Clearing House. They want to understand the breaks and decide what to chase.

			Devise a plan of questions to ask to each experts and come up with the best response to the user's request.
			Never invent a TradeID or an amount, ask the experts.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAuditor returns the expert knowing the outcome of a reconciliation run.
// Amounts are displayed in currency when it is not empty.
func NewAuditor(report recon.Report, currency string) *Expert {
	lib := Tools(report, currency)
	return &Expert{
		Name: "Auditor",
		Description: `This is the Auditor. They reconciled the trades of the Investment Manager (IM),
		the Custodian (Cust) and the Clearing House (CH), and know every break found: mismatched amounts
		and orphan trades missing from a source. Ask the Auditor anything about the run.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an auditor in charge of a three-way trade reconciliation.
				Use the Tools to read the summary of the run and the list of breaks.
				A Mismatch is a trade known by the three sources with different amounts, its difference
				is the largest amount minus the smallest one. An Orphan is a trade missing from at least
				one source, a missing amount is displayed as "-".
				When asked which source is wrong, compare the amounts: the odd one out is the suspect.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the functions serving a report to the experts.
func Tools(report recon.Report, currency string) []Function {
	return []Function{
		summaryFunc(report),
		breaksFunc(report, currency),
		documentationFunc(),
	}
}

func summaryFunc(report recon.Report) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Summary",
			Description: `Summary returns the counts of the reconciliation run: distinct TradeIDs, matched trades, orphans and amount mismatches.`,
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with the counts and the match rate.",
			},
		},
		Func: func(_ context.Context, id string, _ map[string]any) *genai.FunctionResponse {
			return output(id, "Summary", renderer.SummaryMarkdown(report.Summary))
		},
	}
}

func breaksFunc(report recon.Report, currency string) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Breaks",
			Description: `Breaks lists the trades that do not reconcile, with the amount seen by each source and the difference.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"type": {
						Type:        genai.TypeString,
						Description: "Kind of breaks to list: All Types (default), Mismatch or Orphan.",
						Enum:        []string{string(recon.AllTypes), string(recon.OnlyMismatch), string(recon.OnlyOrphan)},
					},
					"id": {
						Type:        genai.TypeString,
						Description: "Only list TradeIDs containing this text, case-insensitive.",
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table of breaks: TradeID, type, IM, Cust and CH amounts, difference.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			f, err := filterArgs(args)
			if err != nil {
				return failure(id, "Breaks", err)
			}
			return output(id, "Breaks", renderer.BreaksMarkdown(f.Apply(report.Breaks), currency))
		},
	}
}

func documentationFunc() *Func {
	topics, _ := docs.GetAllTopics()
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        "Documentation",
			Description: `Documentation returns the user manual of rcs on a topic: ` + strings.Join(topics, ", ") + `.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {
						Type: genai.TypeString,
						Enum: topics,
					},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "The markdown documentation of the topic.",
			},
		},
		Func: func(_ context.Context, id string, args map[string]any) *genai.FunctionResponse {
			topic, err := stringArg(args, "topic", true)
			if err != nil {
				return failure(id, "Documentation", err)
			}
			doc, err := docs.GetTopic(topic)
			if err != nil {
				return failure(id, "Documentation", err)
			}
			return output(id, "Documentation", doc)
		},
	}
}

func filterArgs(args map[string]any) (recon.Filter, error) {
	t, err := stringArg(args, "type", false)
	if err != nil {
		return recon.Filter{}, err
	}
	typ, err := recon.ParseTypeFilter(t)
	if err != nil {
		return recon.Filter{}, fmt.Errorf("argument %q: %w", "type", err)
	}
	tradeID, err := stringArg(args, "id", false)
	if err != nil {
		return recon.Filter{}, err
	}
	return recon.Filter{Type: typ, TradeID: tradeID}, nil
}
