package models

// Profile collections, one per actor kind.
const (
	CollectionUsers    = "users"
	CollectionShelters = "shelters"
)

// UserProfile is an adopter's profile document. The document id is the
// actor's identity-provider UID.
type UserProfile struct {
	ID             string   `json:"id" bson:"_id"`
	Username       string   `json:"username" bson:"username"`
	Email          string   `json:"email" bson:"email"`
	Contact        string   `json:"contact,omitempty" bson:"contact,omitempty"`
	ProfilePicture string   `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	Property       string   `json:"property,omitempty" bson:"property,omitempty"`
	DesiredPets    []string `json:"desired_pets,omitempty" bson:"desired_pets,omitempty"`
	CurrentPets    []string `json:"current_pets,omitempty" bson:"current_pets,omitempty"`
	BookmarkedPets []string `json:"bookmarked_pets" bson:"bookmarked_pets"`
}

// HasBookmarked reports whether petID is in the profile's bookmark set.
func (p *UserProfile) HasBookmarked(petID string) bool {
	for _, id := range p.BookmarkedPets {
		if id == petID {
			return true
		}
	}
	return false
}

// Ratings accumulates star ratings. The average is Sum/Count; a zero Count
// means no ratings yet and no average exists.
type Ratings struct {
	Sum   int64 `json:"sum" bson:"sum"`
	Count int64 `json:"count" bson:"count"`
}

// Average returns the mean rating; ok is false when no ratings exist.
func (r Ratings) Average() (avg float64, ok bool) {
	if r.Count == 0 {
		return 0, false
	}
	return float64(r.Sum) / float64(r.Count), true
}

// ShelterProfile is a shelter's profile document, id keyed like UserProfile.
type ShelterProfile struct {
	ID             string  `json:"id" bson:"_id"`
	Username       string  `json:"username" bson:"username"`
	Email          string  `json:"email" bson:"email"`
	ContactEmail   string  `json:"contact_email,omitempty" bson:"contact_email,omitempty"`
	Number         string  `json:"number,omitempty" bson:"number,omitempty"`
	Address        string  `json:"address,omitempty" bson:"address,omitempty"`
	Website        string  `json:"website,omitempty" bson:"website,omitempty"`
	ProfilePicture string  `json:"profile_picture,omitempty" bson:"profile_picture,omitempty"`
	Ratings        Ratings `json:"ratings" bson:"ratings"`
}

// UpdateUserProfileRequest defines the request body for editing an adopter
// profile. Omitted fields are left untouched.
type UpdateUserProfileRequest struct {
	Username    *string   `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	Contact     *string   `json:"contact,omitempty" validate:"omitempty,max=100"`
	Property    *string   `json:"property,omitempty" validate:"omitempty,max=100"`
	DesiredPets *[]string `json:"desired_pets,omitempty" validate:"omitempty,dive,max=50"`
	CurrentPets *[]string `json:"current_pets,omitempty" validate:"omitempty,dive,max=50"`
}

// Fields flattens the request into a partial-update map.
func (r *UpdateUserProfileRequest) Fields() map[string]any {
	fields := make(map[string]any)
	if r.Username != nil {
		fields["username"] = *r.Username
	}
	if r.Contact != nil {
		fields["contact"] = *r.Contact
	}
	if r.Property != nil {
		fields["property"] = *r.Property
	}
	if r.DesiredPets != nil {
		fields["desired_pets"] = *r.DesiredPets
	}
	if r.CurrentPets != nil {
		fields["current_pets"] = *r.CurrentPets
	}
	return fields
}

// UpdateShelterProfileRequest defines the request body for editing a shelter
// profile.
type UpdateShelterProfileRequest struct {
	Username     *string `json:"username,omitempty" validate:"omitempty,min=2,max=50"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	Number       *string `json:"number,omitempty" validate:"omitempty,max=50"`
	Address      *string `json:"address,omitempty" validate:"omitempty,max=200"`
	Website      *string `json:"website,omitempty" validate:"omitempty,max=200"`
}

// Fields flattens the request into a partial-update map.
func (r *UpdateShelterProfileRequest) Fields() map[string]any {
	fields := make(map[string]any)
	if r.Username != nil {
		fields["username"] = *r.Username
	}
	if r.ContactEmail != nil {
		fields["contact_email"] = *r.ContactEmail
	}
	if r.Number != nil {
		fields["number"] = *r.Number
	}
	if r.Address != nil {
		fields["address"] = *r.Address
	}
	if r.Website != nil {
		fields["website"] = *r.Website
	}
	return fields
}

// SubmitRatingRequest defines the request body for rating a shelter.
type SubmitRatingRequest struct {
	Stars int `json:"stars" validate:"required,min=1,max=5"`
}
