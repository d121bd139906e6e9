package repository

import "errors"

var (
	ErrUserNotFound      = errors.New("usuário não encontrado")
	ErrUsernameTaken     = errors.New("nome de usuário já cadastrado")
	ErrElectionNotFound  = errors.New("eleição não encontrada")
	ErrCandidacyNotFound = errors.New("candidatura não encontrada")
	ErrCandidacyExists   = errors.New("candidato já cadastrado nesta eleição")
	ErrVoteNotFound      = errors.New("voto não encontrado")
	ErrVoteExists        = errors.New("usuário já registrou um voto")
	ErrProfileNotFound   = errors.New("perfil não encontrado")
	ErrProductNotFound   = errors.New("produto não encontrado")
)
