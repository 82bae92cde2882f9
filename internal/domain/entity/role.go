package entity

// RoleCode identifica un rol del sistema. Los roles son datos, no comportamiento:
// la jerarquía se expresa listando los roles que satisfacen cada política, nunca
// con un grafo de herencia.
type RoleCode string

// Enumeración fija de roles.
const (
	RoleAdmin       RoleCode = "ADMIN"
	RoleManager     RoleCode = "MANAGER"
	RoleContributor RoleCode = "CONTRIBUTOR"
	RoleFinance     RoleCode = "FINANCE"
)

// RoleID devuelve la identidad numérica del rol en la tabla gg_role.
func RoleID(code RoleCode) (int, bool) {
	switch code {
	case RoleAdmin:
		return 1, true
	case RoleManager:
		return 2, true
	case RoleContributor:
		return 3, true
	case RoleFinance:
		return 4, true
	}
	return 0, false
}

// ValidRole indica si el código pertenece a la enumeración.
func ValidRole(code RoleCode) bool {
	_, ok := RoleID(code)
	return ok
}

// RoleAssignment es la tupla (usuario, rol, equipo opcional). TeamID nil
// significa asignación global. Como máximo existe una fila por tripleta;
// asignaciones repetidas son no-ops idempotentes.
type RoleAssignment struct {
	UserID string
	Role   RoleCode
	TeamID *string // nil = global
}

// IsGlobal indica si la asignación no está acotada a un equipo.
func (a RoleAssignment) IsGlobal() bool {
	return a.TeamID == nil
}
