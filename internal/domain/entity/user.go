package entity

// Roles que emite el backend.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User identidad derivada del bearer token (solo para mostrar, no verificada).
type User struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Name      string `json:"name"` // "{firstName} {lastName}"
	Image     string `json:"image"`
	Role      string `json:"role"`
}
