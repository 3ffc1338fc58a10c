package domain

// Record is the payload the probe sends.
type Record struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Age   int    `json:"age" validate:"gte=0,lte=150"`
}

// DefaultRecord returns the fixed smoke-test payload.
func DefaultRecord() Record {
	return Record{
		Name:  "John Doe",
		Email: "hello@gmail.com",
		Age:   25,
	}
}

type UserID int64

// User is a Record stored under an id taken from the request path.
// Record is embedded so the JSON shape is flat: {"id":..,"name":..,..}.
type User struct {
	ID UserID `json:"id"`
	Record
}
