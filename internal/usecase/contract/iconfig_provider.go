package usecasecontract

import "time"

// IConfigProvider exposes the configuration values usecases depend on.
type IConfigProvider interface {
	GetAppBaseURL() string
	GetAccessTokenExpiry() time.Duration
	GetSendApprovalEmail() bool
	GetDuplicateEmailConflict() bool
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRedirectURL() string
}
