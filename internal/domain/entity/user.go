package entity

// Roles reconocidos por el motor de ventas.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// Principal es el usuario autenticado de la petición (viene del JWT ya verificado).
type Principal struct {
	ID   int64
	Role string
}

// IsAdmin informa si el usuario tiene rol admin.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// IsVendedor informa si el usuario tiene rol vendedor.
func (p Principal) IsVendedor() bool {
	return p.Role == RoleVendedor
}
