package domain

type Field string

const (
	FieldHeadline Field = "headline"
	FieldEmail    Field = "email"
	FieldDob      Field = "dob"
	FieldZipcode  Field = "zipcode"
	FieldPhone    Field = "phone"
	FieldAvatar   Field = "avatar"
)

var fields = map[Field]struct{}{
	FieldHeadline: {},
	FieldEmail:    {},
	FieldDob:      {},
	FieldZipcode:  {},
	FieldPhone:    {},
	FieldAvatar:   {},
}

func ParseField(s string) (Field, bool) {
	f := Field(s)
	_, ok := fields[f]
	return f, ok
}

// Required reports whether the field may not be cleared.
func (f Field) Required() bool {
	return f != FieldAvatar
}

// Value returns the field as it is rendered to clients; dob is a calendar date.
func (u User) Value(f Field) string {
	switch f {
	case FieldHeadline:
		return u.Headline
	case FieldEmail:
		return u.Email
	case FieldDob:
		return u.Dob.Format(DobLayout)
	case FieldZipcode:
		return u.Zipcode
	case FieldPhone:
		return u.Phone
	case FieldAvatar:
		return u.Avatar
	default:
		return ""
	}
}
