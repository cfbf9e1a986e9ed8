package models

import "strconv"

// ProfileUpdate is a partial field set for the update endpoint. Nil fields are
// omitted from the request entirely; the client never forces an
// overwrite-with-empty on the caller's behalf.
type ProfileUpdate struct {
	Name               *string
	Username           *string
	Email              *string
	Phone              *string
	Website            *string
	BioLink            *string
	IsPrivate          *bool
	LocationPermission *bool
	Languages          *LanguageSet
}

// UpdateFromProfile builds an update carrying every editable field, the shape
// a full profile save sends.
func UpdateFromProfile(p Profile) ProfileUpdate {
	languages := p.Languages.Clone()
	return ProfileUpdate{
		Name:               &p.Name,
		Username:           &p.Username,
		Email:              &p.Email,
		Phone:              &p.Phone,
		Website:            &p.Website,
		BioLink:            &p.BioLink,
		IsPrivate:          &p.IsPrivate,
		LocationPermission: &p.LocationPermission,
		Languages:          &languages,
	}
}

// WireFields translates the present fields to their wire names and encodings:
// booleans as 0/1, languages comma-joined.
func (u ProfileUpdate) WireFields() map[string]string {
	fields := make(map[string]string)
	if u.Name != nil {
		fields["full_name"] = *u.Name
	}
	if u.Username != nil {
		fields["username"] = *u.Username
	}
	if u.Email != nil {
		fields["email"] = *u.Email
	}
	if u.Phone != nil {
		fields["phone"] = *u.Phone
	}
	if u.Website != nil {
		fields["blog_link"] = *u.Website
	}
	if u.BioLink != nil {
		fields["bio_link"] = *u.BioLink
	}
	if u.IsPrivate != nil {
		fields["is_private"] = formatWireBool(*u.IsPrivate)
	}
	if u.LocationPermission != nil {
		fields["location_permission"] = formatWireBool(*u.LocationPermission)
	}
	if u.Languages != nil {
		fields["languages"] = u.Languages.Join()
	}
	return fields
}

func formatWireBool(value bool) string {
	if value {
		return "1"
	}
	return "0"
}

// FormatClientID renders a client identifier the way multipart fields expect.
func FormatClientID(id int64) string {
	return strconv.FormatInt(id, 10)
}
