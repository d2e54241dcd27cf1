package account

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anonto42/picly/internal/models"
)

// PasswordStore is the slice of the remote store the reset flow needs.
// *api.Client satisfies it.
type PasswordStore interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUser(ctx context.Context, userID string, req models.UpdateUserRequest) (*models.User, error)
}

// ResetFlow drives the forgotten-password steps: locate the account and
// mail an OTP, then verify the code and replace the password.
type ResetFlow struct {
	users    PasswordStore
	sender   OTPSender
	validate *validator.Validate

	step int
	user *models.User
	otp  string
}

func NewResetFlow(users PasswordStore, sender OTPSender) *ResetFlow {
	return &ResetFlow{
		users:    users,
		sender:   sender,
		validate: validator.New(),
		step:     StepDetails,
	}
}

// Step reports the flow's current step.
func (f *ResetFlow) Step() int {
	return f.step
}

// Begin finds the account registered under email and mails it a code.
// On success the flow moves to the verification step.
func (f *ResetFlow) Begin(ctx context.Context, email string) error {
	if f.step != StepDetails {
		return ErrWrongStep
	}

	all, err := f.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	var match *models.User
	for i := range all {
		if strings.EqualFold(all[i].Account.Email, email) {
			match = &all[i]
			break
		}
	}
	if match == nil {
		return ErrUnknownEmail
	}

	code := GenerateOTP()
	if err := f.sender.SendOTP(ctx, match.Account.Email, code); err != nil {
		return fmt.Errorf("send verification code: %w", err)
	}

	f.user = match
	f.otp = code
	f.step = StepVerify
	return nil
}

// Verify checks the entered code and, on a match, replaces the stored
// password with newPassword.
func (f *ResetFlow) Verify(ctx context.Context, code, newPassword string) error {
	if f.step != StepVerify {
		return ErrWrongStep
	}
	if code != f.otp {
		return ErrInvalidOTP
	}
	if err := f.validate.Var(newPassword, "required,min=6"); err != nil {
		return fmt.Errorf("new password: %w", err)
	}

	req := models.UpdateUserRequest{Password: newPassword}
	if _, err := f.users.UpdateUser(ctx, f.user.ID, req); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	f.step = StepDetails
	f.user = nil
	f.otp = ""
	return nil
}
