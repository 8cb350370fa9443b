package writers

import (
	"enigma/internal/session"
	"enigma/pkg/api"
)

// ToAPIMessage converts a session message to the v1 wire schema.
func ToAPIMessage(m session.Message) api.MessageV1 {
	return api.MessageV1{
		SessionID: m.SessionID,
		Line:      m.Line,
		Before:    m.Before,
		After:     m.After,
		Input:     m.Input,
		Output:    m.Output,
	}
}
