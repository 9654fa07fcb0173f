package exchange

import "errors"

var ErrRateUnavailable = errors.New("exchange rate unavailable")
