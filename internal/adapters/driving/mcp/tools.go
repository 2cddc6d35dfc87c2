package mcp

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cartvoice/internal/core/domain"
)

// TranscriptInput is the input schema for the interpret and voice_command tools.
type TranscriptInput struct {
	Transcript string `json:"transcript" jsonschema:"the spoken command as text, in English, Hindi or Hinglish"`
}

// MatchInput is the input schema for the match tool.
type MatchInput struct {
	Item string `json:"item" jsonschema:"the product name to look up"`
}

// ProductOutput is a matched product.
type ProductOutput struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Price  float64 `json:"price"`
	Rating float64 `json:"rating"`
	Source string  `json:"source"`
	Score  int     `json:"score"`
}

// MatchOutput is the output schema for the match tool.
type MatchOutput struct {
	Found   bool           `json:"found"`
	Product *ProductOutput `json:"product,omitempty"`
}

// InterpretOutput is the output schema for the interpret tool.
type InterpretOutput struct {
	TranslatedText string         `json:"translated_text"`
	Action         string         `json:"action"`
	Quantity       int            `json:"quantity"`
	Item           string         `json:"item"`
	Lang           string         `json:"lang,omitempty"`
	Stage          string         `json:"stage"`
	UsedOnline     bool           `json:"used_online"`
	Product        *ProductOutput `json:"product,omitempty"`
}

// CartLineOutput is a cart line.
type CartLineOutput struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// VoiceOutput is the output schema for the voice_command tool.
type VoiceOutput struct {
	Status         string           `json:"status"`
	Message        string           `json:"message"`
	Interpretation *InterpretOutput `json:"interpretation,omitempty"`
	Line           *CartLineOutput  `json:"line,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "interpret",
		Description: "Interpret a spoken shopping command without changing the cart",
	}, s.handleInterpret)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "match",
		Description: "Find the catalog product for an item name",
	}, s.handleMatch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "voice_command",
		Description: "Interpret a spoken shopping command and apply it to the cart",
	}, s.handleVoiceCommand)
}

// handleInterpret handles the interpret tool invocation.
func (s *Server) handleInterpret(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TranscriptInput,
) (*mcp.CallToolResult, InterpretOutput, error) {
	outcome, err := s.ports.Voice.Preview(ctx, input.Transcript)
	if err != nil {
		return nil, InterpretOutput{}, err
	}
	return nil, *toInterpretOutput(outcome), nil
}

// handleMatch handles the match tool invocation.
func (s *Server) handleMatch(
	_ context.Context,
	_ *mcp.CallToolRequest,
	input MatchInput,
) (*mcp.CallToolResult, MatchOutput, error) {
	if s.ports.Matcher == nil {
		return nil, MatchOutput{}, ErrMatcherUnavailable
	}

	item := strings.TrimSpace(input.Item)
	if item == "" {
		return nil, MatchOutput{}, nil
	}

	product := toProductOutput(s.ports.Matcher.Match(item))
	return nil, MatchOutput{Found: product != nil, Product: product}, nil
}

// handleVoiceCommand handles the voice_command tool invocation.
func (s *Server) handleVoiceCommand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TranscriptInput,
) (*mcp.CallToolResult, VoiceOutput, error) {
	report, err := s.ports.Voice.Handle(ctx, input.Transcript)
	if err != nil {
		return nil, VoiceOutput{}, err
	}

	output := VoiceOutput{
		Status:         string(report.Status),
		Message:        report.Message,
		Interpretation: toInterpretOutput(report.Outcome),
	}
	if report.Item != nil {
		output.Line = &CartLineOutput{
			ID:       report.Item.ID,
			Name:     report.Item.Name,
			Quantity: report.Item.Quantity,
			Price:    report.Item.Price,
		}
	}
	return nil, output, nil
}

func toInterpretOutput(outcome *domain.CommandOutcome) *InterpretOutput {
	if outcome == nil {
		return nil
	}
	return &InterpretOutput{
		TranslatedText: outcome.TranslatedText,
		Action:         outcome.Parsed.Action.String(),
		Quantity:       outcome.Parsed.Quantity,
		Item:           outcome.Parsed.Item,
		Lang:           outcome.Parsed.Lang,
		Stage:          string(outcome.Stage),
		UsedOnline:     outcome.UsedOnline,
		Product:        toProductOutput(outcome.Match),
	}
}

func toProductOutput(match *domain.MatchResult) *ProductOutput {
	if match == nil {
		return nil
	}
	return &ProductOutput{
		ID:     match.Product.ID,
		Title:  match.Product.Title,
		Price:  match.Product.Price,
		Rating: match.Product.Rating,
		Source: string(match.Source),
		Score:  match.Score,
	}
}
