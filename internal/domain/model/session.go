package model

import "time"

// Session identifica o usuário autenticado em uma requisição.
// É construída a partir do token e passada explicitamente aos serviços.
type Session struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid indica se a sessão identifica um usuário
func (s *Session) Valid() bool {
	return s != nil && s.UserID != 0
}

// HasRole indica se a sessão tem algum dos papéis informados
func (s *Session) HasRole(roles ...Role) bool {
	if s == nil {
		return false
	}
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}
