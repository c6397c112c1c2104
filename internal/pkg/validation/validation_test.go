package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.co",
		"nova@equipe.test",
		"maria+loja@espacobraite.com.br",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"no domain@x.com",
		"missing@tld",
		"@no-local.com",
		"trailing@dot.",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}
