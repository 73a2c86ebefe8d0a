package handler

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestSafeNext(t *testing.T) {
	cases := []struct {
		next string
		want string
	}{
		{"", "/"},
		{"/create/", "/create/"},
		{"/follow/?page=2", "/follow/?page=2"},
		{"/profile/leo/#posts", "/profile/leo/#posts"},
		{"//evil.example.com/", "/"},
		{"/\\evil.example.com", "/"},
		{"/\t/evil.example.com", "/"},
		{"/\r\n/evil.example.com", "/"},
		{"/ /evil.example.com", "/"},
		{"/%2F/evil.example.com", "/"},
		{"https://evil.example.com/", "/"},
		{"javascript:alert(1)", "/"},
		{"evil.example.com", "/"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, safeNext(tc.next), "%q", tc.next)
	}
}

func TestSignupFormUsername(t *testing.T) {
	valid := SignupForm{
		Username:  "leo",
		Email:     "leo@example.com",
		Password1: "Tolstoy1828",
		Password2: "Tolstoy1828",
	}
	assert.NoError(t, binding.Validator.ValidateStruct(&valid))

	for _, name := range []string{"a/b", "a?b", "a#b", "a%b", "a b"} {
		form := valid
		form.Username = name
		err := binding.Validator.ValidateStruct(&form)
		if assert.Error(t, err, name) {
			assert.Contains(t, formErrors(err), "username", name)
		}
	}

	form := valid
	form.Email = ""
	err := binding.Validator.ValidateStruct(&form)
	if assert.Error(t, err) {
		assert.Contains(t, formErrors(err), "email")
	}
}
