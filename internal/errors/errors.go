package errors

import "errors"

var ErrEmptySelection = errors.New("cannot confirm a purchase without selected seats")
