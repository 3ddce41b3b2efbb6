package api

import (
	"strings"

	"github.com/gigcompliance/anj-resolver/pkg/kit"
	"github.com/gigcompliance/anj-resolver/pkg/sheet"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the resolver MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, reg *sheet.Registry) {
	registerResolve(srv, reg)
	registerVerdict(srv, reg)
	registerListSheets(srv, reg)
}

func registerResolve(srv *server.MCPServer, reg *sheet.Registry) {
	tool := mcp.NewTool("resolve_competition",
		mcp.WithDescription("Fuzzy-match a free-text competition name against the ANJ list of authorised competitions for one sport."),
		mcp.WithString("sport", mcp.Required(), mcp.Description("Sport sheet to search (e.g. football)")),
		mcp.WithString("query", mcp.Required(), mcp.Description("Competition name as typed by the user")),
		mcp.WithNumber("threshold", mcp.Description("Minimum match score 1-100 (default 60)")),
	)

	kit.RegisterMCPTool(srv, tool, resolveEndpoint(reg), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		sport, _ := args["sport"].(string)
		query, _ := args["query"].(string)
		threshold := 0
		if v, ok := args["threshold"].(float64); ok {
			threshold = int(v)
		}
		return &kit.MCPDecodeResult{Request: &resolveReq{
			Sport:     sport,
			Query:     query,
			Threshold: threshold,
		}}, nil
	})
}

func registerVerdict(srv *server.MCPServer, reg *sheet.Registry) {
	tool := mcp.NewTool("competition_verdict",
		mcp.WithDescription("Classify one competition of the ANJ list into a canonical betting verdict (restriction and authorised phases)."),
		mcp.WithString("sport", mcp.Required(), mcp.Description("Sport sheet (e.g. football)")),
		mcp.WithString("name", mcp.Required(), mcp.Description("Exact competition name from the sheet")),
		mcp.WithString("category", mcp.Description("Category filter (e.g. Homme, Femme)")),
		mcp.WithString("discipline", mcp.Description("Discipline, for sports that carry one")),
		mcp.WithString("lang", mcp.Description("Answer language: fr, en or es (default fr)")),
	)

	kit.RegisterMCPTool(srv, tool, verdictEndpoint(reg), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		r := &verdictReq{}
		r.Sport, _ = args["sport"].(string)
		r.Name, _ = args["name"].(string)
		r.Category, _ = args["category"].(string)
		r.Discipline, _ = args["discipline"].(string)
		if v, _ := args["lang"].(string); v != "" {
			r.Lang = strings.ToLower(v)
		}
		return &kit.MCPDecodeResult{Request: r}, nil
	})
}

func registerListSheets(srv *server.MCPServer, reg *sheet.Registry) {
	tool := mcp.NewTool("list_sheets",
		mcp.WithDescription("List the loaded ANJ sheets with metadata (sport, version, source, record count)."),
	)

	kit.RegisterMCPTool(srv, tool, listSheetsEndpoint(reg), func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
