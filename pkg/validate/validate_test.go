package validate_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/JQ-Origin/Library-Document-Borrowing-System/pkg/validate"
	"github.com/stretchr/testify/require"
)

type bookForm struct {
	Title string `form:"title" validate:"required"`
	Total int    `form:"total" validate:"min=1"`
	Email string `json:"email" validate:"omitempty,email"`
}

type passwordForm struct {
	Password string `form:"password" validate:"required,maxbytes=72"`
}

func TestCustomValidator_Validate(t *testing.T) {
	v := validate.NewCustomValidator()

	require.NoError(t, v.Validate(bookForm{Title: "Go", Total: 1}))

	err := v.Validate(bookForm{Total: 0, Email: "nope"})
	require.Error(t, err)
	require.Equal(t, "invalid input (title: required, total: min=1, email: email)", validate.Message(err))
}

func TestMessage_PlainError(t *testing.T) {
	require.Equal(t, "boom", validate.Message(errors.New("boom")))
}

func TestCustomValidator_MaxBytes(t *testing.T) {
	v := validate.NewCustomValidator()

	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{name: "ascii at limit", password: strings.Repeat("a", 72)},
		{name: "ascii over limit", password: strings.Repeat("a", 73), wantErr: true},
		{name: "cjk within bytes", password: strings.Repeat("密", 24)},
		{name: "cjk over bytes", password: strings.Repeat("密", 25), wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(passwordForm{Password: tt.password})
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, "invalid input (password: maxbytes=72)", validate.Message(err))
		})
	}
}
