package usecase

import (
	"encoding/json"
	"fmt"
)

// Inbound event names accepted from clients.
const (
	inboundJoinScreen  = "join_screen"
	inboundJoinCompany = "join_company"
	inboundJoinUser    = "join_user"
	inboundSendChat    = "send_chat"
)

// envelope is the wire frame in both directions: a tagged union
// discriminated by event name.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type joinScreenPayload struct {
	ScreenID string `json:"screen_id"`
}

type joinCompanyPayload struct {
	CompanyID string `json:"company_id"`
}

type joinUserPayload struct {
	UserID string `json:"user_id"`
}

type sendChatPayload struct {
	Text        string `json:"text"`
	CompanyID   string `json:"company_id"`
	RecipientID string `json:"recipient_id"`
	SenderID    string `json:"sender_id"`
	SenderName  string `json:"sender_name"`
	Avatar      string `json:"avatar"`
}

// encodeEvent builds the outbound frame for an event.
func encodeEvent(event string, data any) ([]byte, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("marshal %s data: %w", event, err)
		}
		raw = b
	}
	return json.Marshal(envelope{Event: event, Data: raw})
}
