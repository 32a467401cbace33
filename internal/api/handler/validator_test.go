package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/99minutos/products-api/internal/core/domain"
)

func TestValidator_Messages(t *testing.T) {
	empty := ""
	negative := -1.0

	cases := map[string]struct {
		req   any
		field string
		want  string
	}{
		"required":   {&registerRequest{Email: "a@example.com", Password: "secret1"}, "fullName", "fullName should not be empty"},
		"email":      {&loginRequest{Email: "nope", Password: "x"}, "email", "email must be an email"},
		"string min": {&registerRequest{Email: "a@example.com", Password: "12345", FullName: "A"}, "password", "password must be longer than or equal to 6 characters"},
		"number min": {&listProductsRequest{Page: 0, Limit: 10}, "page", "page must not be less than 1"},
		"max":        {&listProductsRequest{Page: 1, Limit: 101}, "limit", "limit must not be greater than 100"},
		"gt":         {&updateProductRequest{Price: &negative}, "price", "price must be greater than 0"},
		"pointer":    {&updateProductRequest{Name: &empty}, "name", "name must be longer than or equal to 1 characters"},
	}
	v := NewValidator()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var verr *domain.ValidationError
			require.ErrorAs(t, v.Validate(tc.req), &verr)
			assert.Equal(t, []string{tc.want}, verr.Fields[tc.field])
			for _, msgs := range verr.Fields {
				for _, m := range msgs {
					assert.NotContains(t, m, "failed validation")
				}
			}
		})
	}
}

func TestValidator_ValidRequestsPass(t *testing.T) {
	v := NewValidator()
	price := 12.5

	assert.NoError(t, v.Validate(&registerRequest{Email: "a@example.com", Password: "secret1", FullName: "Ada"}))
	assert.NoError(t, v.Validate(&createProductRequest{Name: "lamp", Price: 10}))
	assert.NoError(t, v.Validate(&updateProductRequest{Price: &price}))
	assert.NoError(t, v.Validate(&listProductsRequest{Page: 1, Limit: 100}))
}
