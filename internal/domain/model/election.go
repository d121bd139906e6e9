package model

import "time"

// ElectionStatus é o estado de uma eleição
type ElectionStatus string

const (
	ElectionScheduled ElectionStatus = "programada"
	ElectionActive    ElectionStatus = "activa"
	ElectionFinished  ElectionStatus = "finalizada"
)

func (s ElectionStatus) Valid() bool {
	switch s {
	case ElectionScheduled, ElectionActive, ElectionFinished:
		return true
	}
	return false
}

// RepresentationType é o âmbito representado pela eleição
type RepresentationType string

const (
	RepresentationFaculty   RepresentationType = "facultad"
	RepresentationSemester  RepresentationType = "semestre"
	RepresentationCommittee RepresentationType = "comite"
)

func (t RepresentationType) Valid() bool {
	switch t {
	case RepresentationFaculty, RepresentationSemester, RepresentationCommittee:
		return true
	}
	return false
}

// Election representa uma eleição
type Election struct {
	ID                 uint               `json:"id"`
	Name               string             `json:"nombre"`
	Description        string             `json:"descripcion"`
	RepresentationType RepresentationType `json:"tipo_representacion"`
	StartDate          time.Time          `json:"fecha_inicio"`
	EndDate            time.Time          `json:"fecha_fin"`
	Status             ElectionStatus     `json:"estado"`
}

// IsActive indica se a eleição aceita votos
func (e *Election) IsActive() bool {
	return e.Status == ElectionActive
}

// ElectionEntity é a representação de banco de dados de uma eleição
type ElectionEntity struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement"`
	Nombre             string    `gorm:"size:200;not null"`
	Descripcion        string    `gorm:"type:text"`
	TipoRepresentacion string    `gorm:"column:tipo_representacion;size:20;not null"`
	FechaInicio        time.Time `gorm:"column:fecha_inicio;not null;index"`
	FechaFin           time.Time `gorm:"column:fecha_fin;not null"`
	Estado             string    `gorm:"size:20;not null;index"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

func (ElectionEntity) TableName() string {
	return "eleccions"
}

// Formatos aceitos para fecha_inicio e fecha_fin
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"}

// ParseDate interpreta datas enviadas pelos clientes (data simples ou RFC3339)
func ParseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
