package util

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrClassNotFound       = errors.New("class not found")
	ErrComponentNotFound   = errors.New("curriculum component not found")
	ErrComponentNotInClass = errors.New("component does not belong to the enrollment's class")
	ErrInvalidMark         = errors.New("mark must be between 0 and 10")
	ErrEnrollmentInactive  = errors.New("enrollment is not active")
	ErrInvalidRules        = errors.New("invalid approval rules")
)
