package model

import "time"

// Gender é o gênero declarado no perfil
type Gender string

const (
	GenderMale   Gender = "masculino"
	GenderFemale Gender = "femenino"
	GenderOther  Gender = "otro"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

// Profile contém os dados pessoais de um usuário (um por usuário)
type Profile struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	FirstName string `json:"nombres"`
	LastName  string `json:"apellidos"`
	Age       int    `json:"edad"`
	Gender    Gender `json:"genero"`
}

// ProfileEntity é a representação de banco de dados de um perfil
type ProfileEntity struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex"`
	Nombres   string    `gorm:"size:100;not null"`
	Apellidos string    `gorm:"size:100;not null"`
	Edad      int       `gorm:"not null"`
	Genero    string    `gorm:"size:20;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ProfileEntity) TableName() string {
	return "userprofiles"
}
