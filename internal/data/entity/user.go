package entity

type User struct {
	Base
	Name          string  `db:"name"`
	Email         string  `db:"email"`
	Role          string  `db:"role"`
	ContactNumber *string `db:"contact_number"`
}
