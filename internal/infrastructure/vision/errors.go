package vision

import "errors"

// ErrNoGoCV возвращается, если сборка выполнена без тега gocv.
var ErrNoGoCV = errors.New("gocv build tag is not enabled")
