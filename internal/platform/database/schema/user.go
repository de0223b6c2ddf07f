package schema

// UserTable represents the 'users' table
type UserTable struct {
	Table        string
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         string
	CreatedAt    string
	UpdatedAt    string
}

// User is the schema definition for users
var User = UserTable{
	Table:        "users",
	ID:           "id",
	Name:         "name",
	Email:        "email",
	PasswordHash: "passwordhash",
	Address:      "address",
	Role:         "role",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t UserTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.PasswordHash, t.Address, t.Role, t.CreatedAt, t.UpdatedAt,
	}
}
