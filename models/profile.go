package models

// Profile is the editable in-memory profile. Every field holds a concrete
// value after initialization; server responses overwrite fields one by one and
// only when present on the wire.
type Profile struct {
	ID                 int64
	Name               string
	Username           string
	Email              string
	Phone              string
	Website            string
	BioLink            string
	IsPrivate          bool
	LocationPermission bool
	Languages          LanguageSet
	// AvatarLink is read-only from the server; avatar writes go through the
	// dedicated upload endpoint.
	AvatarLink string
}

func DefaultProfile() Profile {
	return Profile{Languages: NewLanguageSet()}
}

// WireProfile is the decode shape of a profile response. Absence and empty
// string are distinct on the wire, so every field is a pointer.
type WireProfile struct {
	ID                 *int64         `json:"id"`
	FullName           *string        `json:"full_name"`
	Username           *string        `json:"username"`
	Email              *string        `json:"email"`
	Phone              *string        `json:"phone"`
	BlogLink           *string        `json:"blog_link"`
	BioLink            *string        `json:"bio_link"`
	IsPrivate          *WireBool      `json:"is_private"`
	LocationPermission *WireBool      `json:"location_permission"`
	Languages          *WireLanguages `json:"languages"`
	AvatarLink         *string        `json:"avatar_link"`
}

// Merge overwrites local fields with the server values that are present.
// Absent fields leave the local value untouched.
func (p *Profile) Merge(w WireProfile) {
	if w.ID != nil {
		p.ID = *w.ID
	}
	if w.FullName != nil {
		p.Name = *w.FullName
	}
	if w.Username != nil {
		p.Username = *w.Username
	}
	if w.Email != nil {
		p.Email = *w.Email
	}
	if w.Phone != nil {
		p.Phone = *w.Phone
	}
	if w.BlogLink != nil {
		p.Website = *w.BlogLink
	}
	if w.BioLink != nil {
		p.BioLink = *w.BioLink
	}
	if w.IsPrivate != nil {
		p.IsPrivate = bool(*w.IsPrivate)
	}
	if w.LocationPermission != nil {
		p.LocationPermission = bool(*w.LocationPermission)
	}
	if w.Languages != nil {
		p.Languages = NewLanguageSet(*w.Languages...)
	}
	if w.AvatarLink != nil {
		p.AvatarLink = *w.AvatarLink
	}
}
