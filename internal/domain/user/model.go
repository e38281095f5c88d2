package user

import (
	"time"

	"github.com/google/uuid"
)

// EmergencyContact is the optional sub-record stored alongside an identity.
type EmergencyContact struct {
	Name     string `json:"name,omitempty"`
	Relation string `json:"relation,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// User maps to the users table. The contact number doubles as the source of
// the doctor-portal verification suffix, so it is stored verbatim.
type User struct {
	ID               uuid.UUID         `db:"id" json:"id"`
	Name             string            `db:"name" json:"name"`
	Age              int               `db:"age" json:"age"`
	Gender           string            `db:"gender" json:"gender"`
	BloodGroup       string            `db:"blood_group" json:"bloodGroup"`
	Contact          string            `db:"contact" json:"contact"`
	Email            string            `db:"email" json:"email"`
	PasswordHash     string            `db:"password_hash" json:"-"`
	PIN              int               `db:"pin" json:"pin"`
	EmergencyContact *EmergencyContact `db:"emergency_contact" json:"emergencyContact,omitempty"`
	ProfileImage     *string           `db:"profile_image" json:"profileImage,omitempty"`
	CreatedAt        time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time         `db:"updated_at" json:"updatedAt"`
}

// Summary is the slice of the identity returned from signup and signin.
type Summary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func (u *User) Summary() Summary {
	return Summary{ID: u.ID, Name: u.Name, Email: u.Email}
}
