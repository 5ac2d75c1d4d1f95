package models

// Actor is the authenticated caller of a request. For students and
// academics, ID is their entity record ID; for admins it is the account ID.
type Actor struct {
	ID   string
	Name string
	Role Role
}
