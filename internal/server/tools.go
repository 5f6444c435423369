package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "expiry_scan",
			Description: "Detect the expiry date on a food label photo and add the item to the inventory. Returns the detected date, confidence, and the stored item id.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the label image file",
					},
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Item name. Default 'Unknown Food'",
					},
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Food category (dairy, fruits, vegetables, grains, proteins, beverages, snacks, other). Default 'other'",
					},
					"quantity": map[string]interface{}{
						"type":        "number",
						"description": "Quantity. Default 1.0",
						"default":     1.0,
					},
					"unit": map[string]interface{}{
						"type":        "string",
						"description": "Quantity unit. Default 'units'",
					},
					"location": map[string]interface{}{
						"type":        "string",
						"description": "Storage location. Default 'Refrigerator'",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "item_add",
			Description: "Add a food item manually with a known expiry date.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": map[string]interface{}{
						"type":        "string",
						"description": "Item name",
					},
					"category": map[string]interface{}{
						"type":        "string",
						"description": "Food category. Default 'other'",
					},
					"expiry": map[string]interface{}{
						"type":        "string",
						"description": "Expiry date in YYYY-MM-DD form",
					},
					"quantity": map[string]interface{}{
						"type":        "number",
						"description": "Quantity. Default 1.0",
						"default":     1.0,
					},
					"unit": map[string]interface{}{
						"type":        "string",
						"description": "Quantity unit. Default 'units'",
					},
					"location": map[string]interface{}{
						"type":        "string",
						"description": "Storage location. Default 'Refrigerator'",
					},
				},
				"required": []string{"name", "expiry"},
			},
		},
		{
			Name:        "inventory_list",
			Description: "List inventory items by status, sorted by expiry date.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"status": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"active", "expired", "consumed", "wasted", "shared", "deleted"},
						"description": "Item status to list. Default 'active'",
					},
				},
			},
		},
		{
			Name:        "expiring_items",
			Description: "List active items expiring within the next N days, each with its alert level.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"days": map[string]interface{}{
						"type":        "integer",
						"description": "Look-ahead window in days. Default 7",
						"default":     7,
					},
				},
			},
		},
		{
			Name:        "alert_summary",
			Description: "Render the plain-text expiry alert summary for the next week.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "waste_report",
			Description: "Render the waste and sustainability report: last-30-day statistics, annual environmental impact, and actionable insights.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList responds to a tools/list request with the tool catalog.
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
