// Package tally agrega os votos por eleição e candidatura.
package tally

import (
	"math"
	"sort"

	"github.com/diillson/univoto/internal/domain/model"
)

// Entry é a contagem de uma candidatura dentro de sua eleição
type Entry struct {
	CandidacyID   uint    `json:"candidaturaid"`
	Candidate     string  `json:"candidato"`
	Proposal      string  `json:"propuesta"`
	Votes         int     `json:"votos"`
	LocalPercent  float64 `json:"porcentaje"`
	GlobalPercent float64 `json:"porcentaje_global"`
}

// Group reúne as candidaturas votadas de uma eleição
type Group struct {
	ElectionID   uint    `json:"eleccionid"`
	ElectionName string  `json:"eleccion"`
	Total        int     `json:"total"`
	Entries      []Entry `json:"candidaturas"`
}

// Summary traz os totais gerais da apuração
type Summary struct {
	TotalVotes  int `json:"total_votos"`
	Elections   int `json:"elecciones"`
	Candidacies int `json:"candidaturas"`
}

// Result é a apuração completa
type Result struct {
	Groups  []Group `json:"resultados"`
	Summary Summary `json:"resumen"`
}

type pairKey struct {
	election  uint
	candidacy uint
}

// Compute conta os votos por (eleição, candidatura) e agrupa por eleição.
// Grupos saem em ordem crescente de eleição; dentro do grupo as candidaturas
// mantêm a ordem em que apareceram. Percentuais com duas casas; denominador
// zero produz 0.
func Compute(votes []model.VoteDetail) Result {
	counts := make(map[pairKey]*Entry)
	names := make(map[uint]string)
	order := make(map[uint][]pairKey)

	for _, v := range votes {
		k := pairKey{v.ElectionID, v.CandidacyID}
		e, seen := counts[k]
		if !seen {
			e = &Entry{CandidacyID: v.CandidacyID, Candidate: v.CandidateUsername, Proposal: v.Proposal}
			counts[k] = e
			order[v.ElectionID] = append(order[v.ElectionID], k)
		}
		e.Votes++
		if _, ok := names[v.ElectionID]; !ok {
			names[v.ElectionID] = v.ElectionName
		}
	}

	electionIDs := make([]uint, 0, len(order))
	for id := range order {
		electionIDs = append(electionIDs, id)
	}
	sort.Slice(electionIDs, func(i, j int) bool { return electionIDs[i] < electionIDs[j] })

	total := len(votes)
	result := Result{
		Groups: make([]Group, 0, len(electionIDs)),
		Summary: Summary{
			TotalVotes:  total,
			Elections:   len(electionIDs),
			Candidacies: len(counts),
		},
	}

	for _, id := range electionIDs {
		group := Group{ElectionID: id, ElectionName: names[id]}
		for _, k := range order[id] {
			group.Total += counts[k].Votes
		}
		for _, k := range order[id] {
			e := *counts[k]
			e.LocalPercent = percent(e.Votes, group.Total)
			e.GlobalPercent = percent(e.Votes, total)
			group.Entries = append(group.Entries, e)
		}
		result.Groups = append(result.Groups, group)
	}

	return result
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*10000) / 100
}
