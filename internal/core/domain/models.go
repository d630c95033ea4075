package domain

// User is a directory entry as returned by the remote API.
// Avatar is empty when the API has none for the user.
type User struct {
	ID        int
	Email     string
	FirstName string
	LastName  string
	Avatar    string
}

// FullName returns "First Last", trimmed when either part is missing.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Page is one decoded page of the user listing.
type Page struct {
	Number     int
	PerPage    int
	Total      int
	TotalPages int
	Users      []User
}

// Lookup is the outcome of resolving a single user ID.
type Lookup struct {
	ID    int
	User  User
	Found bool
}
