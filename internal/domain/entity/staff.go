package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Roles válidos para Staff.
const (
	RoleStaff   = "Staff"
	RoleManager = "Manager"
)

// ValidRole indica si el rol es uno de los dos reconocidos.
func ValidRole(role string) bool {
	return role == RoleStaff || role == RoleManager
}

// Staff representa un empleado con acceso a la API. Username es la llave de login (única).
type Staff struct {
	ID           primitive.ObjectID `bson:"_id"`
	FirstName    string             `bson:"firstname"`
	LastName     string             `bson:"lastname"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordhash"` // bcrypt, nunca se devuelve al cliente
	Role         string             `bson:"role"`
}

// Campos persistidos de Staff.
const (
	StaffFieldFirstName    = "firstname"
	StaffFieldLastName     = "lastname"
	StaffFieldUsername     = "username"
	StaffFieldEmail        = "email"
	StaffFieldPasswordHash = "passwordhash"
	StaffFieldRole         = "role"
)

// Identity identidad autenticada derivada una vez por petición.
type Identity struct {
	ID       string
	Username string
	Role     string
}

// IsManager indica si la identidad tiene rol Manager.
func (i Identity) IsManager() bool {
	return i.Role == RoleManager
}
