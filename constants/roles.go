package constants

// User roles carried in the identity token. The platform's auth service owns
// registration and login; this backend trusts the role claim verbatim.
const (
	RoleClient = "CLIENT"
	RoleDriver = "DRIVER"

	// RoleAny skips the role check and only requires a valid token.
	RoleAny = "any"
)
