package constants

import "time"

// Context keys shared between middleware and handlers
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"
)

// Token settings
const (
	TokenIssuer      = "construct-api"
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenLifetime  = 8 * time.Hour
	RefreshTokenLifetime = 7 * 24 * time.Hour
)

// Progress bounds for projects and tasks
const (
	MinProgress = 0
	MaxProgress = 100
)
