package account

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anonto42/picly/internal/models"
)

var (
	ErrEmailTaken = errors.New("account: email already registered")
	ErrInvalidOTP = errors.New("account: verification code does not match")
	ErrWrongStep  = errors.New("account: wizard step out of order")
)

// Wizard steps.
const (
	StepDetails = 1
	StepVerify  = 2
)

// Form carries the signup details collected in step one.
type Form struct {
	Name     string `validate:"required,min=2,max=50"`
	Email    string `validate:"required,email"`
	Phone    string `validate:"required,min=8,max=15"`
	Password string `validate:"required,min=6"`
}

// Wizard drives the two-step signup: collect details and send an OTP,
// then verify the code and create the user record.
type Wizard struct {
	users    UserStore
	sender   OTPSender
	validate *validator.Validate

	step int
	form Form
	otp  string
}

func NewWizard(users UserStore, sender OTPSender) *Wizard {
	return &Wizard{
		users:    users,
		sender:   sender,
		validate: validator.New(),
		step:     StepDetails,
	}
}

// Step reports the wizard's current step.
func (w *Wizard) Step() int {
	return w.step
}

// Begin validates the form, rejects already-registered emails, then
// generates a code and mails it. On success the wizard moves to the
// verification step.
func (w *Wizard) Begin(ctx context.Context, form Form) error {
	if w.step != StepDetails {
		return ErrWrongStep
	}
	if err := w.validate.Struct(form); err != nil {
		return fmt.Errorf("signup form: %w", err)
	}

	existing, err := w.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("check existing users: %w", err)
	}
	for _, user := range existing {
		if strings.EqualFold(user.Account.Email, form.Email) {
			return ErrEmailTaken
		}
	}

	code := GenerateOTP()
	if err := w.sender.SendOTP(ctx, form.Email, code); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}

	w.form = form
	w.otp = code
	w.step = StepVerify
	return nil
}

// Verify checks the entered code against the one that was mailed and,
// on a match, registers the user. The account is created active with a
// fresh activation code, and a placeholder address the profile editor
// can fill in later.
func (w *Wizard) Verify(ctx context.Context, code string) (*models.User, error) {
	if w.step != StepVerify {
		return nil, ErrWrongStep
	}
	if code != w.otp {
		return nil, ErrInvalidOTP
	}

	req := models.CreateUserRequest{
		Name: w.form.Name,
		Account: models.Account{
			Email:      w.form.Email,
			Password:   w.form.Password,
			ActiveCode: randomActiveCode(),
			IsActive:   true,
		},
		Address: models.Address{
			Street:  "Unknown",
			City:    "Unknown",
			ZipCode: 10000,
		},
	}

	user, err := w.users.CreateUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	w.step = StepDetails
	w.otp = ""
	return user, nil
}

const activeCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomActiveCode() string {
	code := make([]byte, 6)
	for i := range code {
		code[i] = activeCodeAlphabet[rand.IntN(len(activeCodeAlphabet))]
	}
	return string(code)
}
