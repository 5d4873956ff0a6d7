// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package align

import (
	"errors"
	"fmt"
)

var (
	ErrNoCandidates    = errors.New("line has no candidate sequences")
	ErrEmptyChange     = errors.New("change has neither source nor target sign")
	ErrConflictingSign = errors.New("sign interpretation maps to different characters")
	ErrInvalidWeights  = errors.New("penalty weights must not be negative")
)

// ErrSignNotFound reports an id that is foreign to the line used to resolve it.
type ErrSignNotFound struct {
	ID SignID
}

func (e *ErrSignNotFound) Error() string {
	return fmt.Sprintf("sign interpretation %d not found in line", e.ID)
}

func IsErrSignNotFound(err error) bool {
	var e *ErrSignNotFound
	return errors.As(err, &e)
}
