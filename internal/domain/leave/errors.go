package leave

import "errors"

var (
	ErrSubmitFailed = errors.New("failed to submit leave request")
	ErrListFailed   = errors.New("failed to load leave requests")
)
