package wizard

import (
	"context"
	"errors"
	"testing"

	"mynunny_backend/internal/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validNunnyForm() NunnyForm {
	return NunnyForm{
		FirstName:       "Jane",
		LastName:        "Wanjiku",
		Gender:          "female",
		Email:           "jane@example.com",
		PhoneNumber:     "+254712345678",
		Password:        "secret99",
		ConfirmPassword: "secret99",
		IDNumber:        "12345678",
		Region:          "Nairobi",
		County:          "Nairobi",
		Services:        []string{"Childcare"},
		AgeRange:        "25-34",
	}
}

func validClientForm() ClientForm {
	return ClientForm{
		FirstName:          "Peter",
		LastName:           "Omondi",
		Gender:             "male",
		Email:              "peter@example.com",
		Password:           "secret99",
		ConfirmPassword:    "secret99",
		IDNumber:           "87654321",
		Region:             "Coast",
		County:             "Mombasa",
		ServiceDescription: "Need a live-in house help",
		DailyRate:          "1500",
	}
}

func TestValidateNunnyStep1_PhoneNumberRules(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr string
	}{
		{"kenyan international format", "+254712345678", ""},
		{"kenyan local format", "0712345678", ""},
		{"local one-prefix", "0112345678", ""},
		{"missing", "", "Phone number is required"},
		{"too short", "07123", "Invalid Kenyan phone number"},
		{"wrong prefix", "0812345678", "Invalid Kenyan phone number"},
		{"foreign number", "+14155550123", "Invalid Kenyan phone number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validNunnyForm()
			f.PhoneNumber = tt.phone
			errs := ValidateNunnyStep1(f)
			assert.Equal(t, tt.wantErr, errs["phoneNumber"])
		})
	}
}

func TestValidateNunnyStep1_EmailRules(t *testing.T) {
	f := validNunnyForm()
	f.Email = ""
	assert.Equal(t, "Email is required", ValidateNunnyStep1(f)["email"])

	f.Email = "not-an-email"
	assert.Equal(t, "Email is invalid", ValidateNunnyStep1(f)["email"])

	f.Email = "jane@example.com"
	assert.Empty(t, ValidateNunnyStep1(f)["email"])
}

func TestValidateNunnyStep2_PasswordRules(t *testing.T) {
	f := validNunnyForm()
	f.Password = ""
	f.ConfirmPassword = ""
	errs := ValidateNunnyStep2(f)
	assert.Equal(t, "Password is required", errs["password"])

	f.Password = "abc"
	f.ConfirmPassword = "abc"
	errs = ValidateNunnyStep2(f)
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])

	f.Password = "secret99"
	f.ConfirmPassword = "different"
	errs = ValidateNunnyStep2(f)
	assert.Equal(t, "Passwords do not match", errs["confirmPassword"])
}

func TestValidateNunnyStep3(t *testing.T) {
	f := validNunnyForm()
	f.Services = nil
	f.AgeRange = ""
	errs := ValidateNunnyStep3(f)
	assert.Equal(t, "Please select at least one service", errs["services"])
	assert.Equal(t, "Age range is required", errs["ageRange"])

	assert.Empty(t, ValidateNunnyStep3(validNunnyForm()))
}

func TestValidateClientForm_DailyRateRules(t *testing.T) {
	f := validClientForm()
	f.DailyRate = ""
	assert.Equal(t, "Daily rate is required", ValidateClientForm(f)["dailyRate"])

	f.DailyRate = "abc"
	assert.Equal(t, "Please enter a valid amount", ValidateClientForm(f)["dailyRate"])

	f.DailyRate = "-50"
	assert.Equal(t, "Please enter a valid amount", ValidateClientForm(f)["dailyRate"])

	f.DailyRate = "1500"
	assert.Empty(t, ValidateClientForm(f)["dailyRate"])
}

func TestValidation_IsIdempotent(t *testing.T) {
	f := validNunnyForm()
	f.Email = "broken"
	first := ValidateNunnyStep1(f)
	second := ValidateNunnyStep1(f)
	assert.Equal(t, first, second)
}

func TestNunnyWizard_ForwardGatedBackwardFree(t *testing.T) {
	w := NewNunnyWizard()
	w.Form = validNunnyForm()
	w.Form.PhoneNumber = "bogus"

	assert.False(t, w.Next(), "invalid step must block forward movement")
	assert.Equal(t, StepPersonalInfo, w.Step)
	assert.Equal(t, "Invalid Kenyan phone number", w.Errors["phoneNumber"])

	w.Form.PhoneNumber = "0712345678"
	assert.True(t, w.Next())
	assert.Equal(t, StepAccountLocation, w.Step)
	assert.Empty(t, w.Errors)

	assert.True(t, w.Next())
	assert.Equal(t, StepServicesProfile, w.Step)

	assert.True(t, w.Back())
	assert.Equal(t, StepAccountLocation, w.Step)
	assert.True(t, w.Back())
	assert.Equal(t, StepPersonalInfo, w.Step)
	assert.False(t, w.Back(), "cannot move before the first step")
}

func TestNunnyWizard_SubmitOnlyOnLastStep(t *testing.T) {
	w := NewNunnyWizard()
	w.Form = validNunnyForm()

	called := false
	register := func(ctx context.Context, draft profile.Draft, password string) (bool, error) {
		called = true
		return false, nil
	}

	result := w.Submit(context.Background(), register)
	assert.False(t, result.Success)
	assert.False(t, called, "submission before the last step must not register")

	require.True(t, w.Next())
	require.True(t, w.Next())
	result = w.Submit(context.Background(), register)
	assert.True(t, result.Success)
	assert.True(t, called)
}

func TestNunnyWizard_SubmitRevalidatesLastStep(t *testing.T) {
	w := NewNunnyWizard()
	w.Form = validNunnyForm()
	require.True(t, w.Next())
	require.True(t, w.Next())

	w.Form.Services = nil // invalidated after reaching step 3

	called := false
	result := w.Submit(context.Background(), func(ctx context.Context, draft profile.Draft, password string) (bool, error) {
		called = true
		return false, nil
	})

	assert.False(t, result.Success)
	assert.False(t, called)
	assert.Equal(t, "Please select at least one service", result.Errors["services"])
}

func TestNunnyWizard_ProviderRejectionLandsInSubmitSlot(t *testing.T) {
	w := NewNunnyWizard()
	w.Form = validNunnyForm()
	require.True(t, w.Next())
	require.True(t, w.Next())

	result := w.Submit(context.Background(), func(ctx context.Context, draft profile.Draft, password string) (bool, error) {
		return false, errors.New("User with this email already exists.")
	})

	assert.False(t, result.Success)
	assert.Equal(t, "User with this email already exists.", result.Errors["submit"])
}

func TestNunnyWizard_SubmitBuildsNunnyDraft(t *testing.T) {
	w := NewNunnyWizard()
	w.Form = validNunnyForm()
	require.True(t, w.Next())
	require.True(t, w.Next())

	var got profile.Draft
	result := w.Submit(context.Background(), func(ctx context.Context, draft profile.Draft, password string) (bool, error) {
		got = draft
		return true, nil
	})

	assert.True(t, result.Success)
	assert.True(t, result.RequiresVerification)
	assert.Equal(t, profile.TypeNunny, got.Type)
	assert.Equal(t, []string{"Childcare"}, got.Services)
	assert.NoError(t, got.Validate())
}

func TestClientRegistration_SubmitBuildsClientDraft(t *testing.T) {
	r := NewClientRegistration()
	r.Form = validClientForm()

	var got profile.Draft
	result := r.Submit(context.Background(), func(ctx context.Context, draft profile.Draft, password string) (bool, error) {
		got = draft
		return true, nil
	})

	assert.True(t, result.Success)
	assert.Equal(t, profile.TypeClient, got.Type)
	assert.Equal(t, 1500.0, got.DailyRate)
	assert.NoError(t, got.Validate())
}

func TestClientRegistration_ValidationBlocksSubmission(t *testing.T) {
	r := NewClientRegistration()
	r.Form = validClientForm()
	r.Form.ServiceDescription = "  "

	called := false
	result := r.Submit(context.Background(), func(ctx context.Context, draft profile.Draft, password string) (bool, error) {
		called = true
		return false, nil
	})

	assert.False(t, result.Success)
	assert.False(t, called)
	assert.Equal(t, "Service description is required", result.Errors["serviceDescription"])
}
