package models

// User is the minimal customer record this service reads. It is owned by an
// external identity system; only display fields are used here.
type User struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Email string `bson:"email" json:"email"`
}
