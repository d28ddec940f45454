package constant

const (
	// Cookie names shared by the login, refresh and logout flows and the
	// auth middleware.
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	// BearerScheme prefixes the Authorization header fallback.
	BearerScheme = "Bearer "

	// LocalsUser is the fiber locals key the auth middleware stores the
	// authenticated user under.
	LocalsUser = "currentUser"

	// BcryptCost matches the cost factor used for every stored password hash.
	BcryptCost = 10
)
