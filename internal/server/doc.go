// Package server implements the MCP (Model Context Protocol) server for
// the food expiry tracker.
//
// This package provides a JSON-RPC 2.0 server that exposes the detection
// pipeline and inventory over the MCP protocol, so MCP-compatible clients
// can scan labels and query the pantry without the CLI.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - expiry_scan: Detect an expiry date on a label photo and add the item
//   - item_add: Add an item manually with a known expiry date
//   - inventory_list: List items by status
//   - expiring_items: List items expiring within a window
//   - alert_summary: Render the weekly expiry alert summary
//   - waste_report: Render the waste and sustainability report
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
// The server is typically started by an MCP client:
//
//	srv := server.New(store, detector, alertSystem, engine)
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
