package entity

// Capability nombra un permiso del conjunto cerrado que maneja el motor.
type Capability string

// Capacidades conocidas. Cualquier otra clave guardada en user_permissions se ignora.
const (
	CanViewSales     Capability = "can_view_sales"
	CanCreateSales   Capability = "can_create_sales"
	CanViewCustomers Capability = "can_view_customers"
	CanEditCustomers Capability = "can_edit_customers"
	CanManageStock   Capability = "can_manage_stock"
	CanEditProducts  Capability = "can_edit_products"
)

// PermissionSet es el conjunto efectivo de permisos de un usuario.
// Se resuelve una vez por petición y viaja explícito hasta los casos de uso.
type PermissionSet struct {
	CanViewSales     bool `json:"can_view_sales"`
	CanCreateSales   bool `json:"can_create_sales"`
	CanViewCustomers bool `json:"can_view_customers"`
	CanEditCustomers bool `json:"can_edit_customers"`
	CanManageStock   bool `json:"can_manage_stock"`
	CanEditProducts  bool `json:"can_edit_products"`
}

// AllPermissions es el conjunto implícito del admin.
func AllPermissions() PermissionSet {
	return PermissionSet{
		CanViewSales:     true,
		CanCreateSales:   true,
		CanViewCustomers: true,
		CanEditCustomers: true,
		CanManageStock:   true,
		CanEditProducts:  true,
	}
}

// DefaultVendedorPermissions es el conjunto de un vendedor sin fila en user_permissions.
func DefaultVendedorPermissions() PermissionSet {
	return PermissionSet{
		CanViewSales:     true,
		CanCreateSales:   true,
		CanViewCustomers: true,
	}
}

// Has informa si el conjunto concede la capacidad.
func (p PermissionSet) Has(c Capability) bool {
	switch c {
	case CanViewSales:
		return p.CanViewSales
	case CanCreateSales:
		return p.CanCreateSales
	case CanViewCustomers:
		return p.CanViewCustomers
	case CanEditCustomers:
		return p.CanEditCustomers
	case CanManageStock:
		return p.CanManageStock
	case CanEditProducts:
		return p.CanEditProducts
	}
	return false
}

// Set asigna la capacidad. Devuelve false si la clave no es una capacidad conocida.
func (p *PermissionSet) Set(c Capability, v bool) bool {
	switch c {
	case CanViewSales:
		p.CanViewSales = v
	case CanCreateSales:
		p.CanCreateSales = v
	case CanViewCustomers:
		p.CanViewCustomers = v
	case CanEditCustomers:
		p.CanEditCustomers = v
	case CanManageStock:
		p.CanManageStock = v
	case CanEditProducts:
		p.CanEditProducts = v
	default:
		return false
	}
	return true
}

// Caller agrupa el usuario autenticado y sus permisos ya resueltos.
type Caller struct {
	Principal
	Permissions PermissionSet
}

// Can informa si el caller puede ejercer la capacidad (admin siempre puede).
func (c Caller) Can(capability Capability) bool {
	if c.IsAdmin() {
		return true
	}
	return c.Permissions.Has(capability)
}
