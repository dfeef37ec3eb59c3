// File: internal/common/context_keys.go
package common

const (
	// AuthorizationHeader is the header name for authorization token
	AuthorizationHeader = "Authorization"
	// AuthorizationTypeBearer is the prefix for Bearer tokens
	AuthorizationTypeBearer = "Bearer"
	// FirebaseUIDKey is the context key for the authenticated subject's Firebase UID
	FirebaseUIDKey = "firebaseUID"
	// UserEmailKey is the context key for the authenticated subject's email
	UserEmailKey = "userEmail"
	// ProfileIDKey is the context key for the authenticated subject's profile row ID
	ProfileIDKey = "profileID"
	// ProfileTypeKey is the context key for the profile discriminator (nunny/client)
	ProfileTypeKey = "profileType"
)
