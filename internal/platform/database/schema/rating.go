package schema

// RatingTable represents the 'ratings' table
type RatingTable struct {
	Table     string
	ID        string
	UserID    string
	StoreID   string
	Rating    string
	CreatedAt string
	UpdatedAt string
}

// Rating is the schema definition for ratings
var Rating = RatingTable{
	Table:     "ratings",
	ID:        "id",
	UserID:    "userid",
	StoreID:   "storeid",
	Rating:    "rating",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
