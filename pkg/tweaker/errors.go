package tweaker

import "errors"

var (
	ErrEmptyGrid  = errors.New("shaped recipe grid is empty")
	ErrRaggedGrid = errors.New("shaped recipe grid rows differ in width")
)
