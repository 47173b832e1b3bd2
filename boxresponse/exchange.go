package boxresponse

// Exchange is a completed request/response cycle as seen by the transport.
type Exchange struct {
	Status     Status
	StatusCode int
	Body       string
	Headers    Headers
}

func NewExchange(statusCode int, body string, headers Headers) *Exchange {
	return &Exchange{
		Status:     StatusFromCode(statusCode),
		StatusCode: statusCode,
		Body:       body,
		Headers:    headers,
	}
}
