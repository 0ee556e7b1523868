// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Fretwork tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/fretwork/internal/catalog"
	"github.com/starford/fretwork/internal/diagramservice"
	"github.com/starford/fretwork/internal/storage"
)

const encodingsURI = "fretwork://encodings"

// Server wraps the MCP server with Fretwork tools.
type Server struct {
	mcp     *server.MCPServer
	svc     *diagramservice.Service
	db      *catalog.DB
	library storage.Provider
	logger  *slog.Logger
}

// New creates a new MCP server with all Fretwork tools registered. library
// may be nil, which leaves import_chord_library unregistered.
func New(svc *diagramservice.Service, db *catalog.DB, library storage.Provider, logger *slog.Logger) *Server {
	s := &Server{svc: svc, db: db, library: library, logger: logger}

	s.mcp = server.NewMCPServer(
		"Fretwork",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("render_chord",
		mcp.WithDescription("Render a guitar chord diagram from a six-character shape. "+
			"Read the encoding contract first via get_encoding_contract or the "+encodingsURI+" resource."),
		mcp.WithString("shape", mcp.Required(), mcp.Description("Six characters, low E to high E: x, 0 or a fret 1-9 (e.g. x32010)")),
		mcp.WithString("title", mcp.Description("Optional diagram title")),
		mcp.WithString("format", mcp.Description("svg (default) or text"), mcp.Enum("svg", "text")),
	), s.renderChord)

	s.mcp.AddTool(mcp.NewTool("detect_barre",
		mcp.WithDescription("Report the barre, start fret and markers of a chord shape, and the catalogue chords using it."),
		mcp.WithString("shape", mcp.Required(), mcp.Description("Six-character chord shape")),
	), s.detectBarre)

	s.mcp.AddTool(mcp.NewTool("render_scale",
		mcp.WithDescription("Render one scale pattern transposed to a root."),
		mcp.WithString("type", mcp.Required(), mcp.Description("Pattern table"), mcp.Enum("diatonic", "pentatonic")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Pattern number, 1 to 5")),
		mcp.WithString("root", mcp.Description("Root note, e.g. G or Bb (default C)")),
		mcp.WithString("highlight", mcp.Description("Tonic to highlight"), mcp.Enum("none", "major", "minor")),
		mcp.WithBoolean("labels", mcp.Description("Show note names (default true)")),
		mcp.WithString("format", mcp.Description("svg (default) or text"), mcp.Enum("svg", "text")),
	), s.renderScale)

	s.mcp.AddTool(mcp.NewTool("lookup_chord",
		mcp.WithDescription("Look up a chord either by catalogue name or by key and function (e.g. key=G function=IV)."),
		mcp.WithString("name", mcp.Description("Chord name, e.g. F# Minor")),
		mcp.WithString("key", mcp.Description("Key, e.g. C or Am")),
		mcp.WithString("function", mcp.Description("Function label, e.g. I, IV, V7, vi")),
	), s.lookupChord)

	s.mcp.AddTool(mcp.NewTool("list_progression",
		mcp.WithDescription("List the chord groups and common progressions of a key."),
		mcp.WithString("key", mcp.Required(), mcp.Description("Key, e.g. C or Am")),
	), s.listProgression)

	s.mcp.AddTool(mcp.NewTool("search_chords",
		mcp.WithDescription("Search the chord catalogue by name, shape or type."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchChords)

	s.mcp.AddTool(mcp.NewTool("get_encoding_contract",
		mcp.WithDescription("Returns the chord shape, scale pattern and chord library encodings. "+
			"Call this before rendering or importing to ensure correct input."),
	), s.getEncodingContract)

	s.mcp.AddTool(mcp.NewTool("export_diagrams",
		mcp.WithDescription("Write SVG files for every catalogue chord and every scale pattern to the output directory."),
		mcp.WithArray("roots", mcp.Description("Scale roots to export (default C)"), mcp.WithStringItems()),
		mcp.WithString("highlight", mcp.Description("Tonic to highlight"), mcp.Enum("none", "major", "minor")),
	), s.exportDiagrams)

	if library != nil {
		s.mcp.AddTool(mcp.NewTool("import_chord_library",
			mcp.WithDescription("Add a chord library YAML file from an http(s) URL or a base64 data URI, then re-index the catalogue."),
			mcp.WithString("url", mcp.Required(), mcp.Description("http(s) URL or data:application/yaml;base64,... URI")),
			mcp.WithString("filename", mcp.Description("File name to store under (must end with .yaml or .yml)")),
		), s.importLibrary)
	}

	// Resource: encoding contract.
	s.mcp.AddResource(
		mcp.NewResource(encodingsURI, "Encoding Contract",
			mcp.WithResourceDescription("Chord shape, scale pattern and chord library encodings."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEncodingsResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) renderChord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	shape, err := req.RequireString("shape")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, err := s.svc.RenderChord(ctx, shape, req.GetString("title", ""), req.GetString("format", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(d.Content)), nil
}

func (s *Server) detectBarre(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	shape, err := req.RequireString("shape")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	info, err := s.svc.Barre(ctx, shape)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info)
}

func (s *Server) renderScale(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	typ, err := req.RequireString("type")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := req.RequireInt("index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	d, _, err := s.svc.RenderScale(ctx, diagramservice.ScaleRequest{
		Type:      typ,
		Root:      req.GetString("root", ""),
		Highlight: req.GetString("highlight", ""),
		Labels:    req.GetBool("labels", true),
		Format:    req.GetString("format", ""),
	}, index)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(d.Content)), nil
}

func (s *Server) lookupChord(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	key := req.GetString("key", "")
	fn := req.GetString("function", "")

	var (
		detail *diagramservice.ChordDetail
		err    error
	)
	switch {
	case name != "":
		detail, err = s.svc.LookupChord(ctx, name)
	case key != "" && fn != "":
		detail, err = s.svc.ProgressionChord(ctx, key, fn)
	default:
		return mcp.NewToolResultError("either name or key and function are required"), nil
	}
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(detail)
}

func (s *Server) listProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := req.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	view, err := s.svc.Progression(ctx, key)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(view)
}

func (s *Server) searchChords(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.svc.Search(ctx, query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no chords found"), nil
	}
	lines := make([]string, 0, len(results))
	for _, c := range results {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s\t%s", c.Name, c.Shape, c.Type, c.Source))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) exportDiagrams(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	res, err := s.svc.Export(ctx, diagramservice.ExportOptions{
		Roots:     req.GetStringSlice("roots", nil),
		Highlight: req.GetString("highlight", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("written: %d, unchanged: %d", len(res.Written), len(res.Unchanged))), nil
}

func (s *Server) getEncodingContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(EncodingContract), nil
}

func (s *Server) readEncodingsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      encodingsURI,
			MIMEType: "text/markdown",
			Text:     EncodingContract,
		},
	}, nil
}
