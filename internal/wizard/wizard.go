// File: internal/wizard/wizard.go
package wizard

import (
	"context"
	"strconv"
	"strings"

	"mynunny_backend/internal/profile"
)

// Steps of the three-step nunny registration machine.
const (
	StepPersonalInfo    = 1
	StepAccountLocation = 2
	StepServicesProfile = 3
)

// SubmitResult is the outcome of a final wizard submission. Validation
// failures never reach the registration call; provider rejections land in the
// error map under the "submit" key.
type SubmitResult struct {
	Success              bool
	RequiresVerification bool
	Errors               map[string]string
}

// RegisterFunc submits a completed draft to the auth workflow. It returns
// whether email verification is still pending, and a non-nil error carrying
// the user-facing rejection text on failure.
type RegisterFunc func(ctx context.Context, draft profile.Draft, password string) (requiresVerification bool, err error)

// NunnyWizard is the linear three-step registration machine for service
// providers. Forward movement is gated on a clean validation of the current
// step; backward movement is unconditional. Submission only runs on the last
// step and re-validates it first.
type NunnyWizard struct {
	Step   int
	Form   NunnyForm
	Errors map[string]string
}

// NewNunnyWizard starts a wizard at the Personal Info step.
func NewNunnyWizard() *NunnyWizard {
	return &NunnyWizard{Step: StepPersonalInfo, Errors: map[string]string{}}
}

func (w *NunnyWizard) validateCurrentStep() map[string]string {
	switch w.Step {
	case StepPersonalInfo:
		return ValidateNunnyStep1(w.Form)
	case StepAccountLocation:
		return ValidateNunnyStep2(w.Form)
	default:
		return ValidateNunnyStep3(w.Form)
	}
}

// Next validates the current step and advances on a clean result. It reports
// whether the wizard moved.
func (w *NunnyWizard) Next() bool {
	w.Errors = w.validateCurrentStep()
	if len(w.Errors) > 0 || w.Step >= StepServicesProfile {
		return false
	}
	w.Step++
	return true
}

// Back moves one step backward unconditionally, keeping entered values.
func (w *NunnyWizard) Back() bool {
	if w.Step <= StepPersonalInfo {
		return false
	}
	w.Step--
	return true
}

// Submit finalizes the wizard. It refuses to run before the last step,
// re-validates that step, and only then hands the draft to the registration
// call.
func (w *NunnyWizard) Submit(ctx context.Context, register RegisterFunc) SubmitResult {
	if w.Step != StepServicesProfile {
		w.Errors = map[string]string{"submit": "Complete all steps before submitting"}
		return SubmitResult{Success: false, Errors: w.Errors}
	}
	w.Errors = ValidateNunnyStep3(w.Form)
	if len(w.Errors) > 0 {
		return SubmitResult{Success: false, Errors: w.Errors}
	}

	requiresVerification, err := register(ctx, w.Form.ToDraft(), w.Form.Password)
	if err != nil {
		w.Errors = map[string]string{"submit": err.Error()}
		return SubmitResult{Success: false, Errors: w.Errors}
	}
	return SubmitResult{Success: true, RequiresVerification: requiresVerification}
}

// ToDraft converts the accumulated form into a registration draft.
func (f NunnyForm) ToDraft() profile.Draft {
	d := profile.Draft{
		Type:        profile.TypeNunny,
		Email:       f.Email,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		Gender:      profile.Gender(f.Gender),
		IDNumber:    f.IDNumber,
		Region:      f.Region,
		County:      f.County,
		PhoneNumber: f.PhoneNumber,
		Services:    f.Services,
		AgeRange:    f.AgeRange,
	}
	if f.ProfilePictureURL != "" {
		u := f.ProfilePictureURL
		d.ProfilePictureURL = &u
	}
	if f.IDImageURL != "" {
		u := f.IDImageURL
		d.IDImageURL = &u
	}
	return d
}

// ClientRegistration is the single-step client counterpart: validate the
// whole form, then submit.
type ClientRegistration struct {
	Form   ClientForm
	Errors map[string]string
}

// NewClientRegistration creates an empty client registration form.
func NewClientRegistration() *ClientRegistration {
	return &ClientRegistration{Errors: map[string]string{}}
}

// Submit validates the form and hands the draft to the registration call.
func (r *ClientRegistration) Submit(ctx context.Context, register RegisterFunc) SubmitResult {
	r.Errors = ValidateClientForm(r.Form)
	if len(r.Errors) > 0 {
		return SubmitResult{Success: false, Errors: r.Errors}
	}

	requiresVerification, err := register(ctx, r.Form.ToDraft(), r.Form.Password)
	if err != nil {
		r.Errors = map[string]string{"submit": err.Error()}
		return SubmitResult{Success: false, Errors: r.Errors}
	}
	return SubmitResult{Success: true, RequiresVerification: requiresVerification}
}

// ToDraft converts the client form into a registration draft. DailyRate has
// already been validated as a positive number.
func (f ClientForm) ToDraft() profile.Draft {
	rate, _ := strconv.ParseFloat(strings.TrimSpace(f.DailyRate), 64)
	return profile.Draft{
		Type:               profile.TypeClient,
		Email:              f.Email,
		FirstName:          f.FirstName,
		LastName:           f.LastName,
		Gender:             profile.Gender(f.Gender),
		IDNumber:           f.IDNumber,
		Region:             f.Region,
		County:             f.County,
		ServiceDescription: f.ServiceDescription,
		DailyRate:          rate,
	}
}
