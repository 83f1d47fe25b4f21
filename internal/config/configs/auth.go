package configs

// Auth configures bearer token verification. Tokens are issued by the
// identity service and signed with HS256.
type Auth struct {
	Secret string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	Issuer string `env:"JWT_ISSUER"`
}
