package boxresponse

import (
	"encoding/json"
	"fmt"
)

// ErrorPayload is the structured error object Box embeds in non-success bodies.
// Name and Description may both be empty when the body carries neither.
type ErrorPayload struct {
	Name        string
	Description string
	Type        string
	Status      int
	HelpURL     string
	RequestID   string
}

//nolint:tagliatelle // Box mixes API and OAuth2 error shapes
type errorPayloadJSON struct {
	Name             string `json:"name"`
	Code             string `json:"code"`
	Error            string `json:"error"`
	Description      string `json:"description"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Type             string `json:"type"`
	Status           int    `json:"status"`
	HelpURL          string `json:"help_url"`
	RequestID        string `json:"request_id"`
}

func (p *ErrorPayload) UnmarshalJSON(data []byte) error {
	var raw errorPayloadJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = ErrorPayload{
		Name:        firstNonEmpty(raw.Name, raw.Code, raw.Error),
		Description: firstNonEmpty(raw.Description, raw.Message, raw.ErrorDescription),
		Type:        raw.Type,
		Status:      raw.Status,
		HelpURL:     raw.HelpURL,
		RequestID:   raw.RequestID,
	}

	return nil
}

// Message renders "{name}: {description}". ok is false when the payload has no name.
func (p *ErrorPayload) Message() (string, bool) {
	if p == nil || p.Name == "" {
		return "", false
	}

	return fmt.Sprintf("%s: %s", p.Name, p.Description), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
