package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pantrywatch/pantrywatch/internal/alerts"
	"github.com/pantrywatch/pantrywatch/internal/inventory"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "expiry_scan", "inventory_list").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "expiry_scan":
		return s.handleExpiryScan(args)
	case "item_add":
		return s.handleItemAdd(args)
	case "inventory_list":
		return s.handleInventoryList(args)
	case "expiring_items":
		return s.handleExpiringItems(args)
	case "alert_summary":
		return s.handleAlertSummary(args)
	case "waste_report":
		return s.handleWasteReport(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Item Tools ===

type expiryScanArgs struct {
	Path     string  `json:"path"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Location string  `json:"location"`
}

type itemResult struct {
	ItemID        string  `json:"item_id"`
	Name          string  `json:"name"`
	ExpiryDate    string  `json:"expiry_date"`
	DaysRemaining int     `json:"days_remaining"`
	Confidence    float64 `json:"confidence,omitempty"`
	MatchedText   string  `json:"matched_text,omitempty"`
}

func (s *Server) handleExpiryScan(args json.RawMessage) (interface{}, error) {
	a := expiryScanArgs{Name: "Unknown Food", Category: "other", Quantity: 1.0, Unit: "units", Location: "Refrigerator"}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	result := s.detector.Detect(context.Background(), a.Path)
	if !result.Success {
		return nil, fmt.Errorf("no expiry date detected (%s): %s", result.Kind, result.Reason)
	}

	now := time.Now().UTC()
	item := &inventory.FoodItem{
		Name:          a.Name,
		Category:      a.Category,
		PurchaseDate:  now,
		ExpiryDate:    result.Date,
		Quantity:      a.Quantity,
		Unit:          a.Unit,
		Location:      a.Location,
		OCRConfidence: result.Confidence,
		ImagePath:     a.Path,
		Notes:         fmt.Sprintf("Extracted from image - %s", result.MatchedText),
	}
	if err := s.store.AddItem(item); err != nil {
		return nil, fmt.Errorf("saving item: %w", err)
	}
	s.recordAlertIfDue(item, now)

	return itemResult{
		ItemID:        item.ID,
		Name:          item.Name,
		ExpiryDate:    result.DateString(),
		DaysRemaining: result.DaysUntilExpiry,
		Confidence:    result.Confidence,
		MatchedText:   result.MatchedText,
	}, nil
}

type itemAddArgs struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Expiry   string  `json:"expiry"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Location string  `json:"location"`
}

func (s *Server) handleItemAdd(args json.RawMessage) (interface{}, error) {
	a := itemAddArgs{Category: "other", Quantity: 1.0, Unit: "units", Location: "Refrigerator"}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	expiryDate, err := time.ParseInLocation("2006-01-02", a.Expiry, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid expiry date %q, expected YYYY-MM-DD", a.Expiry)
	}

	now := time.Now().UTC()
	item := &inventory.FoodItem{
		Name:         a.Name,
		Category:     a.Category,
		PurchaseDate: now,
		ExpiryDate:   expiryDate,
		Quantity:     a.Quantity,
		Unit:         a.Unit,
		Location:     a.Location,
		Notes:        "Manually entered",
	}
	if err := s.store.AddItem(item); err != nil {
		return nil, fmt.Errorf("saving item: %w", err)
	}
	status := s.recordAlertIfDue(item, now)

	return itemResult{
		ItemID:        item.ID,
		Name:          item.Name,
		ExpiryDate:    expiryDate.Format("2006-01-02"),
		DaysRemaining: status.DaysRemaining,
	}, nil
}

// recordAlertIfDue stores an alert record when the item's expiry already
// falls inside an alert window.
func (s *Server) recordAlertIfDue(item *inventory.FoodItem, now time.Time) alerts.ExpiryStatus {
	status := alerts.CheckStatus(item.ExpiryDate, now)
	if status.Level != alerts.LevelNone {
		if err := s.alerts.LogAlert(item.ID, status.Level, status.DaysRemaining); err != nil {
			s.log.Warn().Err(err).Str("item_id", item.ID).Msg("failed to record alert")
		}
	}
	return status
}

// === Inventory Tools ===

type inventoryListArgs struct {
	Status string `json:"status"`
}

type listedItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Quantity   float64 `json:"quantity"`
	Unit       string  `json:"unit"`
	ExpiryDate string  `json:"expiry_date"`
	Location   string  `json:"location"`
	Status     string  `json:"status"`
}

func (s *Server) handleInventoryList(args json.RawMessage) (interface{}, error) {
	a := inventoryListArgs{Status: "active"}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if a.Status == "" {
		a.Status = "active"
	}

	status := inventory.Status(a.Status)
	if !inventory.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", a.Status)
	}

	items, err := s.store.ListByStatus(status)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	out := make([]listedItem, 0, len(items))
	for _, item := range items {
		out = append(out, listedItem{
			ID:         item.ID,
			Name:       item.Name,
			Category:   item.Category,
			Quantity:   item.Quantity,
			Unit:       item.Unit,
			ExpiryDate: item.ExpiryDate.Format("2006-01-02"),
			Location:   item.Location,
			Status:     string(item.Status),
		})
	}
	return map[string]interface{}{"count": len(out), "items": out}, nil
}

type expiringItemsArgs struct {
	Days int `json:"days"`
}

type expiringItem struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ExpiryDate    string `json:"expiry_date"`
	DaysRemaining int    `json:"days_remaining"`
	AlertLevel    string `json:"alert_level"`
	Message       string `json:"message"`
}

func (s *Server) handleExpiringItems(args json.RawMessage) (interface{}, error) {
	a := expiringItemsArgs{Days: 7}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}
	if a.Days < 1 {
		a.Days = 7
	}

	entries, err := s.alerts.ExpiringItems(a.Days, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	out := make([]expiringItem, 0, len(entries))
	for _, entry := range entries {
		out = append(out, expiringItem{
			ID:            entry.Item.ID,
			Name:          entry.Item.Name,
			ExpiryDate:    entry.Item.ExpiryDate.Format("2006-01-02"),
			DaysRemaining: entry.Status.DaysRemaining,
			AlertLevel:    string(entry.Status.Level),
			Message:       entry.Status.Message,
		})
	}
	return map[string]interface{}{"count": len(out), "items": out}, nil
}

// === Report Tools ===

func (s *Server) handleAlertSummary(args json.RawMessage) (interface{}, error) {
	summary, err := s.alerts.Summary(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return map[string]string{"summary": summary}, nil
}

func (s *Server) handleWasteReport(args json.RawMessage) (interface{}, error) {
	report, err := s.analytics.Report(time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return map[string]string{"report": report}, nil
}
