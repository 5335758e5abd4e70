package pull

import "errors"

// ErrInvalidTuning indicates a tuning value outside its valid range.
var ErrInvalidTuning = errors.New("pull: invalid tuning")
