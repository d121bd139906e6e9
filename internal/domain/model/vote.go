package model

import "time"

// Vote é o registro de um voto emitido
type Vote struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userid"`
	ElectionID  uint      `json:"eleccionid"`
	CandidacyID uint      `json:"candidaturaid"`
	CreatedAt   time.Time `json:"created_at"`
}

// VoteDetail é um voto junto com os dados de eleição, candidatura e eleitor
type VoteDetail struct {
	ID                uint      `json:"id"`
	UserID            uint      `json:"userid"`
	VoterUsername     string    `json:"votante"`
	ElectionID        uint      `json:"eleccionid"`
	ElectionName      string    `json:"eleccion"`
	CandidacyID       uint      `json:"candidaturaid"`
	CandidateUsername string    `json:"candidato"`
	Proposal          string    `json:"propuesta"`
	CreatedAt         time.Time `json:"created_at"`
}

// VoteEntity é a representação de banco de dados de um voto.
// userid é único: cada usuário vota uma única vez em todo o sistema.
type VoteEntity struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	UserID      uint      `gorm:"column:userid;not null;uniqueIndex:idx_voto_user"`
	ElectionID  uint      `gorm:"column:eleccionid;not null;index"`
	CandidacyID uint      `gorm:"column:candidaturaid;not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (VoteEntity) TableName() string {
	return "votos"
}
