package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/feedkit/feedkit/internal/apperrors"
	"github.com/go-resty/resty/v2"
)

// serverMessage is the error envelope the service writes on non-2xx
// responses.
type serverMessage struct {
	Message string `json:"message"`
}

// normalize converts a resty call outcome into the four-kind taxonomy of
// [apperrors]. Priority order mirrors what the failure actually carries:
// a structured response with a status becomes a server error, a sent request
// with no response becomes a network error, anything else falls through to
// unknown. Every remote call in this package routes its outcome through
// here, so downstream consumers observe exactly these shapes.
func normalize(resp *resty.Response, err error) error {
	if err != nil {
		// resty returns an error only when no usable response came back:
		// refused connection, timeout, DNS failure, cancelled context.
		return apperrors.Network().WithCause(err)
	}
	if resp == nil {
		return apperrors.Unknown()
	}

	code := resp.StatusCode()
	if code >= http.StatusOK && code < http.StatusMultipleChoices {
		return nil
	}

	var msg serverMessage
	if decodeErr := json.Unmarshal(resp.Body(), &msg); decodeErr != nil || msg.Message == "" {
		msg.Message = strings.TrimSpace(string(resp.Body()))
	}
	// Non-JSON HTML error pages are noise, not messages.
	if strings.HasPrefix(msg.Message, "<") {
		msg.Message = ""
	}

	return apperrors.Server(code, msg.Message)
}

// decodePayload unmarshals a successful response body, normalizing a
// malformed payload into a client error.
func decodePayload(resp *resty.Response, out any) error {
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return apperrors.Clientf("malformed server response: %v", err).WithCause(err)
	}
	return nil
}
