package models

// CityEntry is one row of a user's dashboard: the owning user and the
// provider's canonical city identifier. (UserID, CityID) is unique per user.
type CityEntry struct {
	ID     int64
	UserID int64
	CityID int
}
