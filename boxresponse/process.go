package boxresponse

import (
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const HeaderRetryAfter = "Retry-After"

// Process classifies exchange and either fills Result or returns exactly one
// typed failure. Parse errors from converter on a success body are returned
// unwrapped. Error payloads are decoded best effort and never fail the call.
//
// A throttled exchange with a blank body is passed through without an error.
func Process[T any](exchange *Exchange, converter Converter) (*Response[T], error) {
	if converter == nil {
		converter = JSONConverter{}
	}

	response := newResponse[T](exchange)
	blank := isBlank(exchange.Body)

	switch exchange.Status {
	case StatusSuccess:
		if blank {
			return response, nil
		}

		var result T
		if err := converter.Parse(exchange.Body, &result); err != nil {
			return nil, err
		}

		response.Result = &result

		return response, nil

	case StatusRateLimitReached:
		if blank {
			return response, nil
		}

		payload := parseErrorPayload(exchange, converter)

		return nil, &RateLimitError{
			Message:    failureMessage(payload, exchange.Body),
			RetryAfter: retryAfter(exchange.Headers),
			Payload:    payload,
		}

	case StatusUnauthorized:
		var payload *ErrorPayload
		if !blank {
			payload = parseErrorPayload(exchange, converter)
		}

		return nil, &AuthExpiredError{
			Message: failureMessage(payload, exchange.Body),
			Payload: payload,
		}

	case StatusError:
		if blank {
			return nil, &APIError{StatusCode: exchange.StatusCode, Message: "", Payload: nil}
		}

		payload := parseErrorPayload(exchange, converter)

		return nil, &APIError{
			StatusCode: exchange.StatusCode,
			Message:    failureMessage(payload, exchange.Body),
			Payload:    payload,
		}

	default:
		return nil, &APIError{StatusCode: exchange.StatusCode, Message: exchange.Body, Payload: nil}
	}
}

func parseErrorPayload(exchange *Exchange, converter Converter) *ErrorPayload {
	var payload ErrorPayload
	if err := converter.Parse(exchange.Body, &payload); err != nil {
		log.Debug().
			Err(err).
			Int("status_code", exchange.StatusCode).
			Str("status", exchange.Status.String()).
			Str("body", exchange.Body).
			Msg("Unable to parse error payload.")

		return nil
	}

	return &payload
}

func failureMessage(payload *ErrorPayload, body string) string {
	if msg, ok := payload.Message(); ok {
		return msg
	}

	return body
}

func retryAfter(headers Headers) int {
	value, ok := headers.Get(HeaderRetryAfter)
	if !ok {
		return DefaultRetryAfter
	}

	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return DefaultRetryAfter
	}

	return seconds
}

func isBlank(body string) bool {
	return strings.TrimSpace(body) == ""
}
