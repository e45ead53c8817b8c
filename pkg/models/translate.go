package models

import (
	"encoding/json"
	"errors"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck/pkg/chat"
	"github.com/jobdeck/jobdeck/pkg/tools"
)

// translateTranscript converts the neutral transcript into Gemini turns.
//
// System messages never become turns: they are lifted out into the returned
// system text (an explicit system argument wins over an embedded one).
// Assistant tool calls are re-expressed as function-call parts; a call whose
// arguments fail to parse is dropped rather than failing the turn. Tool
// results go back as user-directed function responses; content that does not
// parse as JSON is wrapped as a raw result value.
func translateTranscript(messages []chat.Message, system string) ([]*genai.Content, string) {
	systemText := system
	var contents []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case chat.RoleSystem:
			if systemText == "" {
				systemText = msg.Content
			}

		case chat.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})

		case chat.RoleAssistant:
			var parts []genai.Part
			if strings.TrimSpace(msg.Content) != "" {
				parts = append(parts, genai.Text(msg.Content))
			}
			for _, call := range msg.ToolCalls {
				args, err := parseArguments(call.Arguments)
				if err != nil {
					continue
				}
				parts = append(parts, genai.FunctionCall{Name: call.Name, Args: args})
			}
			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: "model", Parts: parts})
			}

		case chat.RoleTool:
			var response map[string]any
			if err := json.Unmarshal([]byte(msg.Content), &response); err != nil || response == nil {
				response = map[string]any{"result": msg.Content}
			}
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.FunctionResponse{Name: msg.ToolName, Response: response}},
			})
		}
	}
	return contents, systemText
}

func parseArguments(raw string) (map[string]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, err
	}
	if args == nil {
		args = map[string]any{}
	}
	return args, nil
}

// declarationsFromSpecs converts the catalog's schema subset into Gemini
// function declarations.
func declarationsFromSpecs(specs []tools.Spec) []*genai.FunctionDeclaration {
	decls := make([]*genai.FunctionDeclaration, 0, len(specs))
	for _, spec := range specs {
		properties := make(map[string]*genai.Schema, len(spec.Parameters))
		for name, param := range spec.Parameters {
			properties[name] = &genai.Schema{
				Type:        schemaType(param.Type),
				Description: param.Description,
				Enum:        param.Enum,
			}
		}
		decls = append(decls, &genai.FunctionDeclaration{
			Name:        spec.Name,
			Description: spec.Description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   spec.Required,
			},
		})
	}
	return decls
}

func schemaType(t string) genai.Type {
	switch t {
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// parseGeminiResponse extracts text and function calls from the first
// candidate. Each parsed call gets a fresh unique id.
func parseGeminiResponse(resp *genai.GenerateContentResponse) (*Reply, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("gemini: empty response")
	}

	var reply Reply
	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		switch p := part.(type) {
		case genai.Text:
			text.WriteString(string(p))
		case genai.FunctionCall:
			args, err := json.Marshal(p.Args)
			if err != nil {
				args = []byte("{}")
			}
			reply.ToolCalls = append(reply.ToolCalls, chat.ToolCall{
				ID:        uuid.NewString(),
				Name:      p.Name,
				Arguments: string(args),
			})
		}
	}
	reply.Text = text.String()
	return &reply, nil
}
