package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcharged/product-service/pkg/validate"
)

type productInput struct {
	Name        string           `json:"name"        validate:"required,max=10"`
	Description string           `json:"description" validate:"nullable,min=3"`
	Price       *decimal.Decimal `json:"price"       validate:"required,gte=0,lte=1000"`
}

func failed(errs validate.Errors, field string) bool {
	for _, fe := range errs {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Widget", Price: price("9.99")})
	assert.Nil(t, errs)
}

func TestRequiredFieldsReportedInOrder(t *testing.T) {
	errs := validate.Struct(&productInput{Name: "   "})
	require.Len(t, errs, 2)
	assert.Equal(t, "name", errs[0].Field)
	assert.Equal(t, "price", errs[1].Field)
	assert.Contains(t, errs.Error(), "name: The name field is required.")
}

func TestZeroDecimalIsPresent(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Free", Price: price("0")})
	assert.Empty(t, errs)
}

func TestDecimalBoundsAreExact(t *testing.T) {
	errs := validate.Struct(productInput{Name: "Neg", Price: price("-0.01")})
	assert.True(t, failed(errs, "price"))

	errs = validate.Struct(productInput{Name: "Max", Price: price("1000.00")})
	assert.False(t, failed(errs, "price"))

	errs = validate.Struct(productInput{Name: "Over", Price: price("1000.001")})
	assert.True(t, failed(errs, "price"))
}

func TestStringLength(t *testing.T) {
	errs := validate.Struct(productInput{Name: "ÄÄÄÄÄÄÄÄÄÄ", Price: price("1")})
	assert.False(t, failed(errs, "name"), "length is counted in runes")

	errs = validate.Struct(productInput{Name: "ABCDEFGHIJK", Price: price("1")})
	assert.True(t, failed(errs, "name"))

	errs = validate.Struct(productInput{Name: "A", Description: "ab", Price: price("1")})
	assert.True(t, failed(errs, "description"))
}

func TestNullableSkipsEmpty(t *testing.T) {
	errs := validate.Struct(productInput{Name: "A", Price: price("1"), Description: "   "})
	assert.False(t, failed(errs, "description"))
}

func TestPriceUpperBound(t *testing.T) {
	type in struct {
		Price *decimal.Decimal `json:"price" validate:"required,gte=0,lte=9999999999999.99"`
	}
	assert.Empty(t, validate.Struct(in{Price: price("9999999999999.99")}))

	errs := validate.Struct(in{Price: price("10000000000000")})
	require.Len(t, errs, 1)
	assert.Equal(t, "The price must be less than or equal to 9999999999999.99.", errs[0].Message)
}

func TestNonStructIsValid(t *testing.T) {
	assert.Nil(t, validate.Struct(42))
	assert.Nil(t, validate.Struct((*productInput)(nil)))
}
