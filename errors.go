package errormetrics

import (
	"errors"
)

var (
	ErrDimensionMismatch = errors.New("sequences have different lengths")
	ErrInvalidStatistic  = errors.New("invalid theil statistic")
	ErrMissingArgument   = errors.New("missing required argument")
	ErrNumericDomain     = errors.New("value outside of numeric domain")
)
