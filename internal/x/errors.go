package x

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// maxErrorBody caps how much of an error response is read.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the X API.
type APIError struct {
	StatusCode int
	Status     string
	Detail     string
	// RateLimitReset is when the current rate-limit window ends, if reported.
	RateLimitReset time.Time
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("x api error (%d %s): %s", e.StatusCode, http.StatusText(e.StatusCode), e.Detail)
	}
	return fmt.Sprintf("x api error: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// errorBody covers the problem-details and legacy error shapes the API returns.
type errorBody struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Errors []struct {
		Message string `json:"message"`
		Title   string `json:"title"`
		Detail  string `json:"detail"`
	} `json:"errors"`
}

// parseAPIError builds an APIError from resp. resp.Body is consumed.
func parseAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{
		StatusCode:     resp.StatusCode,
		Status:         resp.Status,
		RateLimitReset: parseReset(resp.Header.Get("x-rate-limit-reset")),
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		apiErr.Detail = fmt.Sprintf("read error body: %v", err)
		return apiErr
	}

	var parsed errorBody
	if json.Unmarshal(body, &parsed) != nil {
		apiErr.Detail = strings.TrimSpace(string(body))
		return apiErr
	}

	switch {
	case parsed.Detail != "":
		apiErr.Detail = parsed.Detail
	case len(parsed.Errors) > 0:
		details := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			switch {
			case e.Detail != "":
				details = append(details, e.Detail)
			case e.Message != "":
				details = append(details, e.Message)
			default:
				details = append(details, e.Title)
			}
		}
		apiErr.Detail = strings.Join(details, "; ")
	default:
		apiErr.Detail = parsed.Title
	}

	return apiErr
}

func parseReset(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	secs, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}
