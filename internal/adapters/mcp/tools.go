package mcp

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"treewarden/internal/application"
	"treewarden/internal/application/commands"
)

// guard serializes tool calls onto the single session
type guard struct {
	mu      sync.Mutex
	session *commands.Session
}

// RegisterTools adds the layout tools to the MCP server. All handlers
// share session.
func RegisterTools(s *server.MCPServer, session *commands.Session) {
	g := &guard{session: session}

	s.AddTool(pingTool(), pingHandler())
	s.AddTool(pathsTool(), g.pathsHandler())
	s.AddTool(createTool(), g.createHandler())
	s.AddTool(validateTool(), g.validateHandler())
	s.AddTool(remediateTool(), g.remediateHandler())
}

func baseNameOption() mcp.ToolOption {
	return mcp.WithString("base_name",
		mcp.Description("Base directory name under the tree root (e.g. Game). Omit to reuse the name from the previous call."),
	)
}

// useBaseName applies the optional base_name argument. Callers hold g.mu.
func (g *guard) useBaseName(req mcp.CallToolRequest) error {
	if name := req.GetString("base_name", ""); name != "" {
		return g.session.SetBaseName(name)
	}
	return nil
}

// --- ping ---

func pingTool() mcp.Tool {
	return mcp.NewTool("ping",
		mcp.WithDescription("Health check, returns pong"),
	)
}

func pingHandler() server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong"), nil
	}
}

// --- paths ---

func pathsTool() mcp.Tool {
	return mcp.NewTool("paths",
		mcp.WithDescription("List every folder the layout expects for the base directory name, in creation order. Does not touch the filesystem."),
		baseNameOption(),
	)
}

func (g *guard) pathsHandler() server.ToolHandlerFunc {
	return func(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.mu.Lock()
		defer g.mu.Unlock()

		if err := g.useBaseName(req); err != nil {
			return toolError(err)
		}
		paths, err := g.session.ExpectedPaths()
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(strings.Join(paths, "\n")), nil
	}
}

// --- create ---

func createTool() mcp.Tool {
	return mcp.NewTool("create",
		mcp.WithDescription("Create every missing folder of the layout and a marker file in each. Safe to repeat."),
		baseNameOption(),
	)
}

func (g *guard) createHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.mu.Lock()
		defer g.mu.Unlock()

		if err := g.useBaseName(req); err != nil {
			return toolError(err)
		}
		result, err := g.session.RunCreate(ctx)
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		sb.WriteString(result.Message)
		for _, p := range result.Created {
			fmt.Fprintf(&sb, "\n  + %s", p)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- validate ---

func validateTool() mcp.Tool {
	return mcp.NewTool("validate",
		mcp.WithDescription("Compare the tree with the layout. Reports missing folders and unexpected top-level folders."),
		baseNameOption(),
	)
}

func (g *guard) validateHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.mu.Lock()
		defer g.mu.Unlock()

		if err := g.useBaseName(req); err != nil {
			return toolError(err)
		}
		report, err := g.session.RunValidate(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(formatReport(report)), nil
	}
}

// --- remediate ---

func remediateTool() mcp.Tool {
	return mcp.NewTool("remediate",
		mcp.WithDescription("Validate, then move every unexpected top-level folder into the quarantine folder. Existing folders in quarantine are never overwritten."),
		baseNameOption(),
	)
}

func (g *guard) remediateHandler() server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		g.mu.Lock()
		defer g.mu.Unlock()

		if err := g.useBaseName(req); err != nil {
			return toolError(err)
		}
		if _, err := g.session.RunValidate(ctx); err != nil {
			return toolError(err)
		}
		summary, err := g.session.RunRemediate(ctx)
		if summary == nil {
			return toolError(err)
		}

		text := formatSummary(summary)
		if err != nil {
			text += "\nerror: " + err.Error()
			return mcp.NewToolResultError(text), nil
		}
		return mcp.NewToolResultText(text), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatReport(report *application.ValidationReport) string {
	return strings.Join(report.Messages, "\n")
}

func formatSummary(summary *application.RemediationSummary) string {
	var sb strings.Builder
	sb.WriteString(summary.Message())
	for _, m := range summary.Moves {
		if m.OK() {
			fmt.Fprintf(&sb, "\n  moved %s -> %s", m.Source, m.Destination)
		} else {
			fmt.Fprintf(&sb, "\n  failed %s: %v", m.Source, m.Err)
		}
	}
	if summary.Report != nil {
		sb.WriteString("\n\n")
		sb.WriteString(formatReport(summary.Report))
	}
	return sb.String()
}
