package services

import "errors"

var (
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("conflict")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrAdminDisabled        = errors.New("admin login disabled")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrUserNotFound         = errors.New("registered user not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrDayNotFound          = errors.New("workout day not found")
	ErrExerciseNotFound     = errors.New("exercise not found")
	ErrSubscriptionInactive = errors.New("subscription inactive")
	ErrPlanGeneration       = errors.New("plan generation failed")
	ErrPlanSuperseded       = errors.New("plans changed during the request")
	ErrCoachUnavailable     = errors.New("coach unavailable")
	ErrIllustration         = errors.New("illustration generation failed")
	ErrStorageUnavailable   = errors.New("storage not configured")
)
