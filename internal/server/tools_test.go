package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) != 6 {
		t.Fatalf("Expected 6 tools, got %d", len(tools))
	}

	seen := make(map[string]bool)
	for _, tool := range tools {
		if tool.Name == "" {
			t.Error("Tool with empty name")
		}
		if tool.Description == "" {
			t.Errorf("Tool %s has empty description", tool.Name)
		}
		if tool.InputSchema == nil {
			t.Errorf("Tool %s has nil input schema", tool.Name)
		}
		if seen[tool.Name] {
			t.Errorf("Duplicate tool name: %s", tool.Name)
		}
		seen[tool.Name] = true
	}

	for _, name := range []string{
		"expiry_scan", "item_add", "inventory_list",
		"expiring_items", "alert_summary", "waste_report",
	} {
		if !seen[name] {
			t.Errorf("Missing tool: %s", name)
		}
	}
}

func TestToolDefinitions_SchemaStructure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			schema := tool.InputSchema

			if schema["type"] != "object" {
				t.Errorf("schema type: got %v, want object", schema["type"])
			}
			if _, ok := schema["properties"]; !ok {
				t.Error("schema missing properties")
			}

			// Schemas must survive a JSON round trip for the wire format.
			data, err := json.Marshal(schema)
			if err != nil {
				t.Fatalf("schema does not marshal: %v", err)
			}
			var decoded map[string]interface{}
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("schema does not unmarshal: %v", err)
			}
		})
	}
}

func TestToolDefinitions_RequiredFields(t *testing.T) {
	required := map[string][]string{
		"expiry_scan": {"path"},
		"item_add":    {"name", "expiry"},
	}

	for _, tool := range GetToolDefinitions() {
		want, ok := required[tool.Name]
		if !ok {
			continue
		}
		got, ok := tool.InputSchema["required"].([]string)
		if !ok {
			t.Errorf("%s: required is not a string slice", tool.Name)
			continue
		}
		if len(got) != len(want) {
			t.Errorf("%s: required = %v, want %v", tool.Name, got, want)
			continue
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: required[%d] = %s, want %s", tool.Name, i, got[i], want[i])
			}
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	req := &MCPRequest{JSONRPC: "2.0", ID: 7, Method: "tools/list"}

	resp := s.handleToolsList(req)

	if resp.ID != 7 {
		t.Errorf("ID: got %v, want 7", resp.ID)
	}
	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	if _, ok := result["tools"]; !ok {
		t.Error("Result missing tools key")
	}
}
