package service

import (
	"strconv"
	"strings"

	"caserelay/internal/adapters/notion"
	perr "caserelay/internal/platform/errors"
)

// callerError rewrites upstream failures into the messages callers see
// code, field and cause are kept so status mapping and diagnostics still work
func callerError(err error) error {
	e, ok := perr.As(err)
	if !ok {
		return err
	}
	fromUpstream := strings.HasPrefix(e.Op(), "notion ")

	switch e.Code() {
	case perr.ErrorCodeUnauthorized:
		return perr.Remessage(err, "Invalid Notion API token or insufficient permissions")
	case perr.ErrorCodeNotFound:
		return perr.Remessage(err, "Database not found or integration lacks access")
	case perr.ErrorCodeTooManyRequests:
		if wait, ok := notion.RetryAfter(err); ok {
			return perr.Remessage(err, "Rate limit exceeded. Please try again in "+strconv.Itoa(int(wait.Seconds()))+" seconds.")
		}
		return perr.Remessage(err, "Rate limit exceeded. Please try again later.")
	case perr.ErrorCodeNoDataSource:
		return perr.Remessage(err, e.Message()+". Share a data source of this database with the integration and try again.")
	case perr.ErrorCodeValidation:
		if fromUpstream {
			return perr.Remessage(err, "Invalid request data: "+e.Message())
		}
	case perr.ErrorCodeUpstream, perr.ErrorCodeMalformedResponse:
		return perr.Remessage(err, "Notion API error: "+e.Message())
	}
	return err
}
