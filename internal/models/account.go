package models

import "time"

// Actor kinds. The kind is resolved once at sign-up from the shelter email
// allow-list and never changes afterwards.
const (
	KindAdopter = "adopter"
	KindShelter = "shelter"
)

// Account links an identity-provider UID to an actor kind and cached display
// name. Stored in PostgreSQL.
type Account struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FirebaseUID string    `json:"firebase_uid" gorm:"uniqueIndex"`
	Email       string    `json:"email" gorm:"uniqueIndex"`
	Kind        string    `json:"kind"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
}

// Actor is the authenticated caller, either an adopter or a shelter,
// resolved from the account registry once per request.
type Actor struct {
	ID          string `json:"id"` // identity-provider UID
	Email       string `json:"email"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name,omitempty"`
}

// IsShelter reports whether the actor signed up with an allow-listed
// shelter email.
func (a Actor) IsShelter() bool { return a.Kind == KindShelter }

// ProfileCollection returns the collection the actor's profile document
// lives in.
func (a Actor) ProfileCollection() string {
	if a.IsShelter() {
		return CollectionShelters
	}
	return CollectionUsers
}

// SignUpRequest defines the request body for registering a new actor.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=2,max=50"`
}
