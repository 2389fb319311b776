package auth

import "regexp"

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

// RegisterInput is the checkout form: contact details always, delivery
// address only when the cart holds a physical line.
type RegisterInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
	Street  string `json:"street"`
}

// ValidateRegistration returns field-level errors keyed by field name.
// An empty map means the form passes. Validation is purely local; no
// remote call happens while it fails.
func ValidateRegistration(in RegisterInput, requireAddress bool) map[string]string {
	errs := make(map[string]string)

	if in.Name == "" {
		errs["name"] = "Name is required"
	}

	switch {
	case in.Email == "":
		errs["email"] = "Email is required"
	case !emailPattern.MatchString(in.Email):
		errs["email"] = "Invalid email address"
	}

	switch {
	case in.Phone == "":
		errs["phone"] = "Phone Number is required"
	case !phonePattern.MatchString(in.Phone):
		errs["phone"] = "Invalid phone number"
	}

	if requireAddress {
		if in.Country == "" {
			errs["country"] = "Country is required"
		}
		if in.State == "" {
			errs["state"] = "State is required"
		}
		if in.City == "" {
			errs["city"] = "City is required"
		}
		if in.Street == "" {
			errs["street"] = "Address is required"
		}
	}

	return errs
}
