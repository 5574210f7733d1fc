package syncer

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/latinogino/prestashop-mcp/internal/integrations"
)

// mcpTool converts a registry tool into its advertised MCP schema.
func mcpTool(t integrations.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description)}
	for _, p := range t.Params {
		props := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			props = append(props, mcp.Required())
		}
		if len(p.Enum) > 0 {
			props = append(props, mcp.Enum(p.Enum...))
		}

		switch p.Type {
		case integrations.TypeInteger, integrations.TypeNumber:
			if n, ok := numericDefault(p.Default); ok {
				props = append(props, mcp.DefaultNumber(n))
			}
			opts = append(opts, mcp.WithNumber(p.Name, props...))
		case integrations.TypeBoolean:
			if b, ok := p.Default.(bool); ok {
				props = append(props, mcp.DefaultBool(b))
			}
			opts = append(opts, mcp.WithBoolean(p.Name, props...))
		case integrations.TypeArray:
			items := p.Items
			if items == "" {
				items = integrations.TypeString
			}
			props = append(props, mcp.Items(map[string]any{"type": string(items)}))
			opts = append(opts, mcp.WithArray(p.Name, props...))
		default:
			if s, ok := p.Default.(string); ok {
				props = append(props, mcp.DefaultString(s))
			}
			opts = append(opts, mcp.WithString(p.Name, props...))
		}
	}
	return mcp.NewTool(t.Name, opts...)
}

func numericDefault(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}

// mcpHandler routes a host call through the registry and renders the result as JSON text.
func mcpHandler(reg *integrations.Registry, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res := reg.Call(ctx, name, req.GetArguments())
		text, err := res.JSON()
		if err != nil {
			return nil, err
		}
		if !res.OK() {
			return mcp.NewToolResultError(text), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

func newMCPServer(name, version string, reg *integrations.Registry) *server.MCPServer {
	s := server.NewMCPServer(name, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	for _, t := range reg.All() {
		s.AddTool(mcpTool(t), mcpHandler(reg, t.Name))
	}
	return s
}
