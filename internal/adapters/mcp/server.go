package mcpadapter

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/kirillkom/legal-classification-browser/internal/core/domain"
	"github.com/kirillkom/legal-classification-browser/internal/core/ports"
)

const version = "1.0.0"

// Handlers exposes the browse and export use cases as MCP tools.
type Handlers struct {
	browser  ports.Browser
	exporter ports.Exporter
}

func NewHandlers(browser ports.Browser, exporter ports.Exporter) *Handlers {
	return &Handlers{browser: browser, exporter: exporter}
}

func NewServer(name string, browser ports.Browser, exporter ports.Exporter) *server.MCPServer {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))
	NewHandlers(browser, exporter).Register(s)
	return s
}

func (h *Handlers) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("list_subjects",
		mcp.WithDescription("List the distinct legal subjects present in the loaded table."),
	), h.ListSubjects)

	s.AddTool(mcp.NewTool("filter_records",
		append([]mcp.ToolOption{
			mcp.WithDescription("Return the projects matching a subject, keyword and minimum confidence."),
		}, filterOptions()...)...,
	), h.FilterRecords)

	s.AddTool(mcp.NewTool("subject_distribution",
		mcp.WithDescription("Count projects per subject over the whole table, most frequent first."),
	), h.SubjectDistribution)

	s.AddTool(mcp.NewTool("summary",
		mcp.WithDescription("Summary metrics of the whole table: totals, mean confidence and confidence bands."),
	), h.Summary)

	s.AddTool(mcp.NewTool("export_csv",
		append([]mcp.ToolOption{
			mcp.WithDescription("Export the filtered projects as UTF-8 CSV with every source column."),
		}, filterOptions()...)...,
	), h.ExportCSV)
}

func filterOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("subject",
			mcp.Description(`Exact subject to keep, or "all" for every subject.`),
		),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive text that must appear in the relevant text segment."),
		),
		mcp.WithNumber("min_confidence",
			mcp.Description("Minimum confidence percentage (0-100). Ignored when the table has no confidence column."),
			mcp.Min(0),
			mcp.Max(100),
		),
	}
}

func (h *Handlers) ListSubjects(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(map[string]any{
		"all":      domain.AllSubjects,
		"subjects": h.browser.Subjects(),
	})
}

func (h *Handlers) FilterRecords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := h.browser.Browse(ctx, filterFromRequest(req))
	if err != nil {
		return toolError(err)
	}
	return jsonResult(map[string]any{
		"shown":   result.Shown,
		"total":   result.Total,
		"records": result.Cards,
	})
}

func (h *Handlers) SubjectDistribution(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.browser.Distribution())
}

func (h *Handlers) Summary(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.browser.Summary())
}

func (h *Handlers) ExportCSV(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload, err := h.exporter.Export(ctx, filterFromRequest(req), domain.FormatCSV)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(map[string]any{
		"filename":     payload.Filename,
		"content_type": payload.ContentType,
		"content":      string(payload.Data),
	})
}

func filterFromRequest(req mcp.CallToolRequest) domain.Filter {
	filter := domain.DefaultFilter()
	filter.Subject = req.GetString("subject", filter.Subject)
	filter.Keyword = req.GetString("keyword", filter.Keyword)
	filter.MinConfidence = req.GetFloat("min_confidence", filter.MinConfidence)
	return filter
}

// toolError reports caller mistakes as tool errors and keeps protocol errors
// for failures the caller cannot fix.
func toolError(err error) (*mcp.CallToolResult, error) {
	if domain.IsKind(err, domain.ErrInvalidInput) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(raw)), nil
}
