package entities

// AdminRole is the only role allowed on admin routes.
const AdminRole = "ADMIN"

// AdminUser is a configured site administrator.
type AdminUser struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	PasswordHash string `json:"-"`
}

// LoginInput represents input for admin login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// AuthResponse is returned after a successful login or refresh.
type AuthResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	ExpiresIn    int64      `json:"expiresIn"`
	SessionID    string     `json:"sessionId,omitempty"`
	User         *AdminUser `json:"user"`
}
