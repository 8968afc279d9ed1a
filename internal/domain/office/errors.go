package office

import "errors"

// Office registry errors
var (
	ErrOfficeNotFound   = errors.New("office location not found")
	ErrOfficeCodeExists = errors.New("office code already exists")
)
