package models

// Gender values accepted at registration. Anything outside male/female is
// stored as-is but ignored by group composition classification.
const (
	GenderMale        = "male"
	GenderFemale      = "female"
	GenderUnspecified = "unspecified"
)

// User represents a registered mobile user and their device identifiers
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Gender       string `json:"gender"`
	IMEI         string `json:"imei"`
	BTName       string `json:"bt_name"`
	CreatedAt    string `json:"created_at"`
}
