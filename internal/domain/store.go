package domain

// Postal address of a store, kept for display purposes.
type Address struct {
	Street  string
	City    string
	State   string
	Zipcode string
}

// Represents a grocery store the planner may route through.
// A Store has a unique identifier, a resolved (or unresolved) location, and
// a presence-only inventory of item identifiers. Stores are immutable inputs
// to the planner; nothing in the search mutates them.
type Store struct {
	StoreID  string
	Name     string
	Address  Address
	Location Coordinates
	Items    ItemSet
}
