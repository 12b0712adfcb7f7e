// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package boardsim

import "github.com/pkg/errors"

// Errors returned by the board. Use errors.Is to test for them since they are
// usually wrapped with some context.
//
var (
	ErrSelfConnection  = errors.New("cannot connect a port to itself")
	ErrAlreadyExists   = errors.New("connection already exists")
	ErrUnknownPort     = errors.New("unknown port")
	ErrNotFound        = errors.New("connection not found")
	ErrInvalidSnapshot = errors.New("invalid snapshot")
	ErrUnknownEntity   = errors.New("unknown entity")
)
