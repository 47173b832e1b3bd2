//nolint:ireturn
package httpclient

import (
	"context"
	"errors"
	"net/http"

	"github.com/andyle182810/boxsdk/boxresponse"
	"github.com/rs/zerolog/log"
)

// Do executes one request and classifies the exchange into T. With a token
// provider configured, an expired credential is invalidated and the request is
// sent once more.
func Do[T any](
	ctx context.Context,
	c *Client,
	method, path string,
	body any,
	opts ...RequestOption,
) (*boxresponse.Response[T], error) {
	return do[T](ctx, c, c.converter, method, path, body, opts...)
}

// DoRaw is Do for endpoints that return non-JSON content. The body is kept as
// bytes; error payloads are still decoded as JSON.
func DoRaw(
	ctx context.Context,
	c *Client,
	method, path string,
	opts ...RequestOption,
) (*boxresponse.Response[[]byte], error) {
	return do[[]byte](ctx, c, boxresponse.RawConverter{}, method, path, nil, opts...)
}

func do[T any](
	ctx context.Context,
	c *Client,
	converter boxresponse.Converter,
	method, path string,
	body any,
	opts ...RequestOption,
) (*boxresponse.Response[T], error) {
	var response *boxresponse.Response[T]

	err := c.withRetry(ctx, func(ctx context.Context) error {
		resp, err := send[T](ctx, c, converter, method, path, body, opts...)
		if err != nil {
			return err
		}

		response = resp

		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func send[T any](
	ctx context.Context,
	c *Client,
	converter boxresponse.Converter,
	method, path string,
	body any,
	opts ...RequestOption,
) (*boxresponse.Response[T], error) {
	exchange, err := c.Execute(ctx, method, path, body, opts...)
	if err != nil {
		return nil, err
	}

	response, err := boxresponse.Process[T](exchange, converter)
	if err == nil || !errors.Is(err, boxresponse.ErrAuthExpired) || !canRefresh(c.tokenProvider) {
		return response, err
	}

	log.Debug().
		Err(err).
		Str("method", method).
		Str("path", path).
		Msg("Access token rejected, refreshing and retrying once.")

	c.tokenProvider.InvalidateToken()

	exchange, err = c.Execute(ctx, method, path, body, opts...)
	if err != nil {
		return nil, err
	}

	return boxresponse.Process[T](exchange, converter)
}

func result[T any](response *boxresponse.Response[T], err error) (*T, error) {
	if err != nil {
		return nil, err
	}

	return response.Result, nil
}

func GetJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*T, error) {
	return result[T](Do[T](ctx, c, http.MethodGet, path, nil, opts...))
}

func PostJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*T, error) {
	return result[T](Do[T](ctx, c, http.MethodPost, path, body, opts...))
}

func PutJSON[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (*T, error) {
	return result[T](Do[T](ctx, c, http.MethodPut, path, body, opts...))
}

func DeleteJSON[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (*T, error) {
	return result[T](Do[T](ctx, c, http.MethodDelete, path, nil, opts...))
}
