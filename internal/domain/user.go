package domain

import "time"

// User is the canonical account record. PasswordHash is empty for accounts
// created through Google sign-in that never set a password.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Address      Address
	Company      Company
	AvatarURL    string
	GoogleSub    string // provider subject when the account is linked to Google
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Address struct {
	Street  string
	City    string
	State   string
	Country string
	ZipCode string
}

type Company struct {
	Name     string
	Position string
}

// HasPassword reports whether the account can authenticate with a password.
func (u User) HasPassword() bool { return u.PasswordHash != "" }

// UserUpdate enumerates every profile field a client may change. Nil means
// "leave as is"; address and company merge field by field, they are never
// replaced wholesale.
type UserUpdate struct {
	Name      *string
	Email     *string
	Phone     *string
	AvatarURL *string
	Address   AddressUpdate
	Company   CompanyUpdate
}

type AddressUpdate struct {
	Street  *string
	City    *string
	State   *string
	Country *string
	ZipCode *string
}

type CompanyUpdate struct {
	Name     *string
	Position *string
}

// IsZero reports whether the update would change nothing.
func (u UserUpdate) IsZero() bool {
	return u.Name == nil && u.Email == nil && u.Phone == nil && u.AvatarURL == nil &&
		u.Address == (AddressUpdate{}) && u.Company == (CompanyUpdate{})
}

// Apply merges the update into a copy of u and returns it. Stores that cannot
// express partial merges natively (the in-memory repo) use this.
func (upd UserUpdate) Apply(u User) User {
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.AvatarURL != nil {
		u.AvatarURL = *upd.AvatarURL
	}
	if upd.Address.Street != nil {
		u.Address.Street = *upd.Address.Street
	}
	if upd.Address.City != nil {
		u.Address.City = *upd.Address.City
	}
	if upd.Address.State != nil {
		u.Address.State = *upd.Address.State
	}
	if upd.Address.Country != nil {
		u.Address.Country = *upd.Address.Country
	}
	if upd.Address.ZipCode != nil {
		u.Address.ZipCode = *upd.Address.ZipCode
	}
	if upd.Company.Name != nil {
		u.Company.Name = *upd.Company.Name
	}
	if upd.Company.Position != nil {
		u.Company.Position = *upd.Company.Position
	}
	return u
}
