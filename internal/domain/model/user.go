package model

import "time"

// Role é o papel do usuário no processo eleitoral
type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleAdministrativo Role = "ADMINISTRATIVO"
	RoleCandidato      Role = "CANDIDATO"
	RoleVotante        Role = "VOTANTE"
)

// Roles lista os papéis reconhecidos
var Roles = []Role{RoleAdmin, RoleAdministrativo, RoleCandidato, RoleVotante}

// Valid indica se o papel é conhecido
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// User representa um usuário do sistema; o hash da senha nunca é serializado
type User struct {
	ID             uint      `json:"id"`
	Identificacion string    `json:"identificacion"`
	Username       string    `json:"username"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
}

// UserEntity é a representação de banco de dados de um usuário
type UserEntity struct {
	ID             uint      `gorm:"primaryKey;autoIncrement"`
	Identificacion string    `gorm:"size:50;not null"`
	Username       string    `gorm:"uniqueIndex;size:100;not null"`
	PasswordHash   string    `gorm:"column:password_hash;not null"`
	Role           string    `gorm:"size:20;not null;index"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

// TableName define o nome da tabela
func (UserEntity) TableName() string {
	return "users"
}
