package mcp

import (
	"context"

	eolerrors "eol-mcp-server/internal/errors"

	mcp "github.com/fredcamaral/gomcp-sdk"
)

// Tool names exposed over MCP.
const (
	ToolGetAllProducts     = "eol_get_all_products"
	ToolGetProductVersions = "eol_get_product_versions"
	ToolGetCycleDetails    = "eol_get_cycle_details"
	ToolSearchProducts     = "eol_search_products"
	ToolCheckSupportStatus = "eol_check_support_status"
)

// registerTools registers the five lifecycle tools.
func (es *EOLServer) registerTools() {
	es.mcpServer.AddTool(mcp.NewTool(
		ToolGetAllProducts,
		"List every product tracked by the endoflife.date catalog. Use this to discover valid product names before querying versions or support status.",
		mcp.ObjectSchema("No parameters", map[string]interface{}{}, []string{}),
	), mcp.ToolHandlerFunc(es.handleGetAllProducts))

	es.mcpServer.AddTool(mcp.NewTool(
		ToolGetProductVersions,
		"Get all release cycles of a product with their end-of-life and support dates. Product names are lowercase catalog identifiers, e.g. 'python', 'nodejs', 'ubuntu'.",
		mcp.ObjectSchema("Product versions parameters", map[string]interface{}{
			"product": map[string]interface{}{
				"type":        "string",
				"description": "Catalog product name, e.g. 'python'",
			},
		}, []string{"product"}),
	), mcp.ToolHandlerFunc(es.handleGetProductVersions))

	es.mcpServer.AddTool(mcp.NewTool(
		ToolGetCycleDetails,
		"Get the details of one release cycle of a product: EOL date, support window, latest patch release.",
		mcp.ObjectSchema("Cycle details parameters", map[string]interface{}{
			"product": map[string]interface{}{
				"type":        "string",
				"description": "Catalog product name, e.g. 'python'",
			},
			"cycle": map[string]interface{}{
				"type":        "string",
				"description": "Release cycle identifier, e.g. '3.11' or '22.04'",
			},
		}, []string{"product", "cycle"}),
	), mcp.ToolHandlerFunc(es.handleGetCycleDetails))

	es.mcpServer.AddTool(mcp.NewTool(
		ToolSearchProducts,
		"Search tracked products by name. Matching is a case-insensitive substring check against catalog product names.",
		mcp.ObjectSchema("Product search parameters", map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "Substring to look for in product names",
			},
		}, []string{"query"}),
	), mcp.ToolHandlerFunc(es.handleSearchProducts))

	es.mcpServer.AddTool(mcp.NewTool(
		ToolCheckSupportStatus,
		"Check whether a specific version of a product is currently supported and whether it has reached end of life. The version may be a cycle ('3.11'), a patch release ('3.11.9') or a partial prefix. An unknown version yields found=false with is_supported=false and is_eol=true.",
		mcp.ObjectSchema("Support status parameters", map[string]interface{}{
			"product": map[string]interface{}{
				"type":        "string",
				"description": "Catalog product name, e.g. 'python'",
			},
			"version": map[string]interface{}{
				"type":        "string",
				"description": "Version to check, e.g. '3.11' or '3.11.9'",
			},
		}, []string{"product", "version"}),
	), mcp.ToolHandlerFunc(es.handleCheckSupportStatus))

	es.logger.Info("MCP tools registered", "count", 5)
}

// Tool handlers. Failures are reported as structured payloads naming the
// failing tool and its arguments, not as protocol errors, so clients
// always see which operation failed and with what input.

func (es *EOLServer) handleGetAllProducts(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	result, err := es.container.GetService().GetAllProducts(ctx)
	if err != nil {
		return eolerrors.ToolErrorResult(ToolGetAllProducts, params, err), nil
	}
	return result, nil
}

func (es *EOLServer) handleGetProductVersions(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	if err := es.errorHandler.ValidateRequiredParams(params, []string{"product"}); err != nil {
		return eolerrors.ToolErrorResult(ToolGetProductVersions, params, err), nil
	}
	product, _ := params["product"].(string)

	result, err := es.container.GetService().GetProductVersions(ctx, product)
	if err != nil {
		return eolerrors.ToolErrorResult(ToolGetProductVersions, params, err), nil
	}
	return result, nil
}

func (es *EOLServer) handleGetCycleDetails(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	if err := es.errorHandler.ValidateRequiredParams(params, []string{"product", "cycle"}); err != nil {
		return eolerrors.ToolErrorResult(ToolGetCycleDetails, params, err), nil
	}
	product, _ := params["product"].(string)
	cycle, _ := params["cycle"].(string)

	result, err := es.container.GetService().GetCycleDetails(ctx, product, cycle)
	if err != nil {
		return eolerrors.ToolErrorResult(ToolGetCycleDetails, params, err), nil
	}
	return result, nil
}

func (es *EOLServer) handleSearchProducts(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	if err := es.errorHandler.ValidateRequiredParams(params, []string{"query"}); err != nil {
		return eolerrors.ToolErrorResult(ToolSearchProducts, params, err), nil
	}
	query, _ := params["query"].(string)

	result, err := es.container.GetService().SearchProducts(ctx, query)
	if err != nil {
		return eolerrors.ToolErrorResult(ToolSearchProducts, params, err), nil
	}
	return result, nil
}

func (es *EOLServer) handleCheckSupportStatus(ctx context.Context, params map[string]interface{}) (interface{}, error) {
	if err := es.errorHandler.ValidateRequiredParams(params, []string{"product", "version"}); err != nil {
		return eolerrors.ToolErrorResult(ToolCheckSupportStatus, params, err), nil
	}
	product, _ := params["product"].(string)
	version, _ := params["version"].(string)

	result, err := es.container.GetService().GetStatus(ctx, product, version)
	if err != nil {
		return eolerrors.ToolErrorResult(ToolCheckSupportStatus, params, err), nil
	}
	return result, nil
}
