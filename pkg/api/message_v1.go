// pkg/api/message_v1.go
package api

// MessageV1 is the stable JSON/JSONL schema for one converted message line.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type MessageV1 struct {
	SessionID string `json:"session_id"`
	Line      int    `json:"line"`   // 1-based input line number
	Before    string `json:"before"` // rotor positions before the line
	After     string `json:"after"`  // rotor positions after the line
	Input     string `json:"input"`
	Output    string `json:"output"`
}
