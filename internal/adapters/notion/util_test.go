package notion

import stderrs "errors"

func asAPIError(err error, target **APIError) bool { return stderrs.As(err, target) }
