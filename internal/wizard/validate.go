// File: internal/wizard/validate.go
package wizard

import (
	"regexp"
	"strconv"
	"strings"
)

// Validation is pure and idempotent: the same form always yields the same
// error map, keyed by field name. An empty map means the fields pass.
var (
	emailPattern       = regexp.MustCompile(`\S+@\S+\.\S+`)
	kenyanPhonePattern = regexp.MustCompile(`^(\+254|0)[17]\d{8}$`)
)

const minPasswordLength = 6

// NunnyForm is the draft a service-provider registration wizard accumulates
// across its three steps.
type NunnyForm struct {
	// Step 1: Personal Info
	FirstName   string
	LastName    string
	Gender      string
	Email       string
	PhoneNumber string

	// Step 2: Account & Location
	Password        string
	ConfirmPassword string
	IDNumber        string
	Region          string
	County          string

	// Step 3: Services & Profile
	Services          []string
	AgeRange          string
	ProfilePictureURL string
	IDImageURL        string
}

// ClientForm is the single-step client registration draft.
type ClientForm struct {
	FirstName          string
	LastName           string
	Gender             string
	Email              string
	Password           string
	ConfirmPassword    string
	IDNumber           string
	Region             string
	County             string
	ServiceDescription string
	DailyRate          string
}

// ValidateNunnyStep1 checks the Personal Info step.
func ValidateNunnyStep1(f NunnyForm) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if f.Gender == "" {
		errs["gender"] = "Gender is required"
	}
	validateEmail(f.Email, errs)
	if strings.TrimSpace(f.PhoneNumber) == "" {
		errs["phoneNumber"] = "Phone number is required"
	} else if !kenyanPhonePattern.MatchString(f.PhoneNumber) {
		errs["phoneNumber"] = "Invalid Kenyan phone number"
	}
	return errs
}

// ValidateNunnyStep2 checks the Account & Location step.
func ValidateNunnyStep2(f NunnyForm) map[string]string {
	errs := map[string]string{}
	validatePassword(f.Password, f.ConfirmPassword, errs)
	validateIdentityLocation(f.IDNumber, f.Region, f.County, errs)
	return errs
}

// ValidateNunnyStep3 checks the Services & Profile step.
func ValidateNunnyStep3(f NunnyForm) map[string]string {
	errs := map[string]string{}
	if len(f.Services) == 0 {
		errs["services"] = "Please select at least one service"
	}
	if f.AgeRange == "" {
		errs["ageRange"] = "Age range is required"
	}
	return errs
}

// ValidateClientForm checks the whole single-step client registration form.
func ValidateClientForm(f ClientForm) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.FirstName) == "" {
		errs["firstName"] = "First name is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["lastName"] = "Last name is required"
	}
	if f.Gender == "" {
		errs["gender"] = "Gender is required"
	}
	validateEmail(f.Email, errs)
	validatePassword(f.Password, f.ConfirmPassword, errs)
	validateIdentityLocation(f.IDNumber, f.Region, f.County, errs)
	if strings.TrimSpace(f.ServiceDescription) == "" {
		errs["serviceDescription"] = "Service description is required"
	}
	if strings.TrimSpace(f.DailyRate) == "" {
		errs["dailyRate"] = "Daily rate is required"
	} else if rate, err := strconv.ParseFloat(strings.TrimSpace(f.DailyRate), 64); err != nil || rate <= 0 {
		errs["dailyRate"] = "Please enter a valid amount"
	}
	return errs
}

func validateEmail(email string, errs map[string]string) {
	if strings.TrimSpace(email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs["email"] = "Email is invalid"
	}
}

func validatePassword(password, confirm string, errs map[string]string) {
	if password == "" {
		errs["password"] = "Password is required"
	} else if len(password) < minPasswordLength {
		errs["password"] = "Password must be at least 6 characters"
	}
	if password != confirm {
		errs["confirmPassword"] = "Passwords do not match"
	}
}

func validateIdentityLocation(idNumber, region, county string, errs map[string]string) {
	if strings.TrimSpace(idNumber) == "" {
		errs["idNumber"] = "ID number is required"
	}
	if region == "" {
		errs["region"] = "Region is required"
	}
	if county == "" {
		errs["county"] = "County is required"
	}
}
