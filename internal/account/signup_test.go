package account

import (
	"context"
	"errors"
	"testing"

	"github.com/anonto42/picly/internal/models"
)

type captureSender struct {
	email string
	code  string
	err   error
}

func (s *captureSender) SendOTP(_ context.Context, email, code string) error {
	if s.err != nil {
		return s.err
	}
	s.email = email
	s.code = code
	return nil
}

func validForm() Form {
	return Form{Name: "Lan", Email: "lan@example.com", Phone: "0901234567", Password: "secret1"}
}

func TestSignupWizardHappyPath(t *testing.T) {
	store := &stubUserStore{}
	sender := &captureSender{}
	wizard := NewWizard(store, sender)
	ctx := context.Background()

	if err := wizard.Begin(ctx, validForm()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	if wizard.Step() != StepVerify {
		t.Fatalf("expected step %d got %d", StepVerify, wizard.Step())
	}
	if sender.email != "lan@example.com" {
		t.Fatalf("expected code mailed to form email got %q", sender.email)
	}
	if len(sender.code) != 6 {
		t.Fatalf("expected a six-digit code got %q", sender.code)
	}

	user, err := wizard.Verify(ctx, sender.code)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if user.Name != "Lan" {
		t.Fatalf("unexpected user %+v", user)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one created user got %d", len(store.created))
	}

	created := store.created[0]
	if !created.Account.IsActive {
		t.Fatalf("expected account created active")
	}
	if created.Account.ActiveCode == "" {
		t.Fatalf("expected an activation code")
	}
	if created.Address.Street != "Unknown" {
		t.Fatalf("expected placeholder address got %+v", created.Address)
	}
	if wizard.Step() != StepDetails {
		t.Fatalf("expected wizard reset got step %d", wizard.Step())
	}
}

func TestSignupWizardRejectsDuplicateEmail(t *testing.T) {
	store := &stubUserStore{users: []models.User{activeUser("lan@example.com", "x")}}
	wizard := NewWizard(store, &captureSender{})

	if err := wizard.Begin(context.Background(), validForm()); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken got %v", err)
	}
}

func TestSignupWizardRejectsInvalidForm(t *testing.T) {
	wizard := NewWizard(&stubUserStore{}, &captureSender{})

	form := validForm()
	form.Email = "not-an-email"
	if err := wizard.Begin(context.Background(), form); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestSignupWizardRejectsWrongOTP(t *testing.T) {
	sender := &captureSender{}
	wizard := NewWizard(&stubUserStore{}, sender)
	ctx := context.Background()

	if err := wizard.Begin(ctx, validForm()); err != nil {
		t.Fatalf("begin: %v", err)
	}

	wrong := "000000"
	if sender.code == wrong {
		wrong = "111111"
	}
	if _, err := wizard.Verify(ctx, wrong); !errors.Is(err, ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP got %v", err)
	}
}

func TestSignupWizardStepOrder(t *testing.T) {
	wizard := NewWizard(&stubUserStore{}, &captureSender{})

	if _, err := wizard.Verify(context.Background(), "123456"); !errors.Is(err, ErrWrongStep) {
		t.Fatalf("expected ErrWrongStep got %v", err)
	}
}
