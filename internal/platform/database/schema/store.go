package schema

// StoreTable represents the 'stores' table
type StoreTable struct {
	Table     string
	ID        string
	Name      string
	Email     string
	Address   string
	OwnerID   string
	CreatedAt string
	UpdatedAt string
}

// Store is the schema definition for stores
var Store = StoreTable{
	Table:     "stores",
	ID:        "id",
	Name:      "name",
	Email:     "email",
	Address:   "address",
	OwnerID:   "ownerid",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns all standard column names
func (t StoreTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Email, t.Address, t.OwnerID, t.CreatedAt, t.UpdatedAt,
	}
}
