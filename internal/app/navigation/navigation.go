// Package navigation mapeia o papel da sessão para as telas disponíveis ao cliente.
package navigation

import "github.com/diillson/univoto/internal/domain/model"

// Screen identifica uma tela do cliente
type Screen string

const (
	ScreenLogin             Screen = "Login"
	ScreenInicio            Screen = "Inicio"
	ScreenProductos         Screen = "Productos"
	ScreenPerfil            Screen = "Perfil"
	ScreenInventario        Screen = "Inventario"
	ScreenUsuarios          Screen = "Usuarios"
	ScreenCrearEleccion     Screen = "CrearEleccion"
	ScreenEditarEleccion    Screen = "EditarEleccion"
	ScreenAgregarCandidato  Screen = "AgregarCandidato"
	ScreenResultados        Screen = "Resultados"
	ScreenListaCandidaturas Screen = "ListaCandidaturas"
	ScreenPanelVotante      Screen = "PanelVotante"
	ScreenAgregarVotacion   Screen = "AgregarVotacion"
)

// Telas comuns a qualquer usuário autenticado
var common = []Screen{ScreenInicio, ScreenProductos, ScreenPerfil, ScreenInventario}

var byRole = map[model.Role][]Screen{
	model.RoleAdmin: {
		ScreenUsuarios, ScreenCrearEleccion, ScreenEditarEleccion,
		ScreenAgregarCandidato, ScreenResultados,
	},
	model.RoleAdministrativo: {ScreenListaCandidaturas, ScreenResultados},
	model.RoleCandidato:      {ScreenListaCandidaturas},
	model.RoleVotante:        {ScreenPanelVotante, ScreenAgregarVotacion, ScreenListaCandidaturas},
}

// State é o mapa de navegação entregue ao cliente
type State struct {
	LoggedIn     bool       `json:"logged_in"`
	RoleResolved bool       `json:"role_resolved"`
	Role         model.Role `json:"role,omitempty"`
	Screens      []Screen   `json:"screens"`
}

// Resolve calcula as telas visíveis. Sem sessão apenas Login; sessão com papel
// vazio ou desconhecido fica no estado transitório, só com as telas comuns.
func Resolve(session *model.Session) State {
	if !session.Valid() {
		return State{Screens: []Screen{ScreenLogin}}
	}

	screens := append([]Screen(nil), common...)
	extra, known := byRole[session.Role]
	if !known {
		return State{LoggedIn: true, Screens: screens}
	}

	return State{
		LoggedIn:     true,
		RoleResolved: true,
		Role:         session.Role,
		Screens:      append(screens, extra...),
	}
}

// Allows indica se a sessão pode ver a tela
func Allows(session *model.Session, screen Screen) bool {
	for _, s := range Resolve(session).Screens {
		if s == screen {
			return true
		}
	}
	return false
}

// RolesFor lista os papéis que têm acesso à tela; usado pelos gates de rota
func RolesFor(screen Screen) []model.Role {
	var roles []model.Role
	for _, role := range model.Roles {
		for _, s := range byRole[role] {
			if s == screen {
				roles = append(roles, role)
				break
			}
		}
	}
	return roles
}
