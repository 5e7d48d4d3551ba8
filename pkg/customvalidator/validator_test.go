package customvalidator

import (
	"testing"

	"github.com/aarondl/null/v8"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Type   string       `json:"type" validate:"required,request_type"`
	Status string       `json:"status" validate:"omitempty,request_status"`
	Kind   string       `json:"kind" validate:"omitempty,equipment_status"`
	Role   string       `json:"role" validate:"omitempty,profile_role"`
	Name   string       `json:"name" validate:"notblank"`
	Price  null.Float64 `json:"price" validate:"omitempty,gt=0"`
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, RegisterCustomValidations(v))
	return v
}

func TestCustomRules(t *testing.T) {
	v := newValidator(t)

	t.Run("валидная структура", func(t *testing.T) {
		err := v.Struct(sample{Type: "repair", Status: "approved", Kind: "in_use", Role: "blocked", Name: "Мяч", Price: null.Float64From(10)})
		assert.NoError(t, err)
	})

	t.Run("неизвестный тип заявки", func(t *testing.T) {
		err := v.Struct(sample{Type: "gift", Name: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request_type")
	})

	t.Run("pending нельзя передать как целевой статус", func(t *testing.T) {
		err := v.Struct(sample{Type: "item", Status: "pending", Name: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request_status")
	})

	t.Run("пустое имя из пробелов", func(t *testing.T) {
		err := v.Struct(sample{Type: "item", Name: "   "})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "notblank")
	})

	t.Run("null.Float64 проверяется по значению", func(t *testing.T) {
		err := v.Struct(sample{Type: "item", Name: "x", Price: null.Float64From(-1)})
		require.Error(t, err)

		err = v.Struct(sample{Type: "item", Name: "x", Price: null.Float64{}})
		assert.NoError(t, err)
	})
}
