package model

import "time"

// Candidacy liga um usuário candidato a uma eleição com sua proposta
type Candidacy struct {
	ID         uint   `json:"id"`
	ElectionID uint   `json:"eleccionid"`
	UserID     uint   `json:"userid"`
	Proposal   string `json:"propuesta"`

	// Preenchidos apenas em leituras com junção
	Username     string `json:"username,omitempty"`
	ElectionName string `json:"eleccion,omitempty"`
}

// CandidacyEntity é a representação de banco de dados de uma candidatura.
// O par (userid, eleccionid) é único.
type CandidacyEntity struct {
	ID         uint           `gorm:"primaryKey;autoIncrement"`
	Propuesta  string         `gorm:"type:text;not null"`
	UserID     uint           `gorm:"column:userid;not null;uniqueIndex:idx_candidatura_user_eleccion"`
	ElectionID uint           `gorm:"column:eleccionid;not null;uniqueIndex:idx_candidatura_user_eleccion;index"`
	User       UserEntity     `gorm:"foreignKey:UserID"`
	Election   ElectionEntity `gorm:"foreignKey:ElectionID"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
}

func (CandidacyEntity) TableName() string {
	return "candidaturas"
}
