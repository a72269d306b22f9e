package service

import "errors"

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserDisabled is returned when a disabled account authenticates.
	ErrUserDisabled = errors.New("account is disabled")
	// ErrInvalidPassword is returned on a failed password change.
	ErrInvalidPassword = errors.New("current password is incorrect")
	// ErrInvalidToken is returned for malformed or expired tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrCaptchaRequired is returned when a captcha answer is missing.
	ErrCaptchaRequired = errors.New("captcha answer required")
	// ErrCaptchaInvalid is returned when a captcha answer is wrong.
	ErrCaptchaInvalid = errors.New("captcha answer invalid")
	// ErrClientInactive is returned when an order targets a deactivated client.
	ErrClientInactive = errors.New("client is deactivated")
	// ErrDuplicateEntry is returned when a document entry repeats.
	ErrDuplicateEntry = errors.New("entry already recorded")
	// ErrBackendUnavailable is returned when the store keeps failing after retries.
	ErrBackendUnavailable = errors.New("storage backend unavailable")
	// ErrEmailDisabled is returned when mail sending is not configured.
	ErrEmailDisabled = errors.New("email sending disabled")
	// ErrUploadTooLarge is returned when an uploaded file exceeds the limit.
	ErrUploadTooLarge = errors.New("uploaded file too large")
	// ErrUploadType is returned when an uploaded file type is not allowed.
	ErrUploadType = errors.New("uploaded file type not allowed")
)
