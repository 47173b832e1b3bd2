package boxresponse

// Response is the classified view of one exchange. Result is set only for a
// successful exchange with a non-blank body. Failures never produce a Response;
// their decoded payload travels on the returned error (APIError.Payload,
// AuthExpiredError.Payload, RateLimitError.Payload).
type Response[T any] struct {
	Result  *T
	Body    string
	Status  Status
	Headers Headers
}

func newResponse[T any](exchange *Exchange) *Response[T] {
	return &Response[T]{
		Result:  nil,
		Body:    exchange.Body,
		Status:  exchange.Status,
		Headers: exchange.Headers,
	}
}
