// Package message defines the IPC wire envelopes and the request
// parameter validators.
//
// Requests are {"method": <string>, "data": <object>}. Responses are
// either {"result":"ok", ...} or {"result":"error","error":<message>}.
// Events pushed to watching clients carry {"event": <name>, ...}.
package message

import (
	"encoding/json"
	"fmt"
)

// Request is a single client request.
type Request struct {
	Method string          `json:"method"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// ParseRequest parses a request envelope from bytes.
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	if req.Method == "" {
		return nil, fmt.Errorf("missing method")
	}
	return &req, nil
}

// Ok returns the bare success envelope.
func Ok() map[string]any {
	return map[string]any{"result": "ok"}
}

// OkInfo returns a success envelope carrying an entity description
// under "info". A nil info serializes to null.
func OkInfo(info any) map[string]any {
	return map[string]any{"result": "ok", "info": info}
}
