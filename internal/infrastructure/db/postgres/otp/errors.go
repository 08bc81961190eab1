package otp

import "errors"

var ErrDuplicateRequest = errors.New("otp request already exists")
