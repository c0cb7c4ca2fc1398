package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/salmonumbrella/redelim/internal/convert"
	"github.com/salmonumbrella/redelim/internal/table"
	"github.com/salmonumbrella/redelim/internal/validate"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(mcp.NewTool("convert_file",
		mcp.WithDescription("Rewrite a delimited text file with a different delimiter. Overwrites the output file (the input itself unless output is given). Returns a summary and the first rows."),
		mcp.WithString("path", mcp.Description("Input file path (.gz and .zst are decompressed)"), mcp.Required()),
		mcp.WithString("output", mcp.Description("Output file path (defaults to path: in-place overwrite)")),
		mcp.WithString("delimiter", mcp.Description("Source delimiter: a character or comma|semicolon|tab|pipe|space (default semicolon)")),
		mcp.WithString("outDelimiter", mcp.Description("Output delimiter (default comma)")),
		mcp.WithNumber("rows", mcp.Description("Number of preview rows to return (default 5)")),
		mcp.WithBoolean("dryRun", mcp.Description("Parse and report without writing")),
		mcp.WithBoolean("lazyQuotes", mcp.Description("Accept stray quotes inside unquoted fields")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleConvertFile)

	s.mcp.AddTool(mcp.NewTool("preview_file",
		mcp.WithDescription("Parse a delimited text file and return its columns, record count and first rows without writing anything"),
		mcp.WithString("path", mcp.Description("Input file path"), mcp.Required()),
		mcp.WithString("delimiter", mcp.Description("Source delimiter (default semicolon)")),
		mcp.WithNumber("rows", mcp.Description("Number of preview rows to return (default 5)")),
		mcp.WithBoolean("lazyQuotes", mcp.Description("Accept stray quotes inside unquoted fields")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{ReadOnlyHint: boolPtr(true)}),
	), s.handlePreviewFile)
}

func (s *Server) handleConvertFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	opts, rows, err := optionsFromArgs(args)
	if err != nil {
		return nil, err
	}
	opts.Output, _ = args["output"].(string)
	opts.DryRun, _ = args["dryRun"].(bool)
	if raw, ok := args["outDelimiter"].(string); ok && raw != "" {
		r, err := validate.Delimiter("outDelimiter", raw)
		if err != nil {
			return nil, err
		}
		opts.OutputDelimiter = r
	}

	res, err := convert.Convert(ctx, opts)
	if err != nil {
		return nil, err
	}
	return jsonResult(res.WithPreview(rows))
}

func (s *Server) handlePreviewFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts, rows, err := optionsFromArgs(req.GetArguments())
	if err != nil {
		return nil, err
	}

	res, err := convert.Inspect(ctx, opts)
	if err != nil {
		return nil, err
	}
	return jsonResult(res.WithPreview(rows))
}

// optionsFromArgs reads the arguments shared by both tools.
func optionsFromArgs(args map[string]any) (convert.Options, int, error) {
	var opts convert.Options

	path, _ := args["path"].(string)
	if err := validate.NonEmpty("path", path); err != nil {
		return opts, 0, err
	}
	opts.Input = path

	if raw, ok := args["delimiter"].(string); ok && raw != "" {
		r, err := validate.Delimiter("delimiter", raw)
		if err != nil {
			return opts, 0, err
		}
		opts.Delimiter = r
	}
	opts.LazyQuotes, _ = args["lazyQuotes"].(bool)

	rows := table.DefaultPreviewRows
	if v, ok := args["rows"].(float64); ok {
		if v != float64(int(v)) {
			return opts, 0, fmt.Errorf("rows: must be an integer, got %v", v)
		}
		rows = int(v)
	}
	if err := validate.PreviewRows(rows); err != nil {
		return opts, 0, err
	}
	return opts, rows, nil
}
