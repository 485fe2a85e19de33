package handler

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/mwhitfield/quill/internal/core/service"
)

func TestFieldErrorsUseFormNames(t *testing.T) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("unexpected validator engine")
	}

	err := v.Struct(RegisterForm{
		Username:        "a",
		Email:           "not-an-email",
		Password:        "hunter22",
		ConfirmPassword: "different",
	})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	errs := fieldErrors(err)
	if errs["username"] != "Must be at least 2 characters long." {
		t.Errorf("unexpected username message: %q", errs["username"])
	}
	if errs["email"] != "Invalid email address." {
		t.Errorf("unexpected email message: %q", errs["email"])
	}
	if errs["confirm_password"] != "Field must be equal to password." {
		t.Errorf("unexpected confirm message: %q", errs["confirm_password"])
	}
	if _, ok := errs["form"]; ok {
		t.Error("validation failures must not fall back to the generic entry")
	}
}

func TestFieldErrorsGenericFallback(t *testing.T) {
	errs := fieldErrors(errors.New("unexpected EOF"))
	if errs["form"] == "" {
		t.Error("non-validation failures need the form-level message")
	}
}

func TestDuplicateFieldErrors(t *testing.T) {
	if errs := duplicateFieldErrors(service.ErrDuplicateUsername); errs["username"] == "" {
		t.Error("duplicate username must land on the username field")
	}
	if errs := duplicateFieldErrors(fmt.Errorf("wrap: %w", service.ErrDuplicateEmail)); errs["email"] == "" {
		t.Error("wrapped duplicate email must land on the email field")
	}
	if errs := duplicateFieldErrors(nil); errs != nil {
		t.Errorf("nil error must map to nil, got %v", errs)
	}
	if errs := duplicateFieldErrors(errors.New("boom")); errs != nil {
		t.Errorf("unrelated error must map to nil, got %v", errs)
	}
}
