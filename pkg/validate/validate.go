// Package validate provides struct-tag validation.
//
// Supported rules (comma-separated in the `validate` tag):
//
//	required        field must not be zero/blank/nil
//	nullable        if empty, skip the remaining rules for this field
//	min=N           string: min rune length | number: min value
//	max=N           string: max rune length | number: max value
//	gt=N gte=N      number bounds
//	lt=N lte=N
//
// Numbers include every Go numeric kind and shopspring decimal.Decimal, with
// exact comparison for decimals.
//
//	type Input struct {
//	    Name  string           `json:"name"  validate:"required,max=100"`
//	    Price *decimal.Decimal `json:"price" validate:"required,gte=0"`
//	}
package validate

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldError is one failed rule. Only the first failing rule per field is reported.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the ordered list of failures, in struct field order.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Struct validates every exported field of v carrying a `validate` tag.
// It returns nil when v is valid.
func Struct(v interface{}) Errors {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}
	rt := rv.Type()

	var errs Errors
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" || !field.IsExported() {
			continue
		}

		name := jsonFieldName(field)
		value := rv.Field(i)
		rules := strings.Split(tag, ",")

		if hasRule(rules, "nullable") && isEmpty(value) {
			continue
		}

		for _, rule := range rules {
			rule = strings.TrimSpace(rule)
			if rule == "" || rule == "nullable" {
				continue
			}
			if msg := applyRule(rule, name, value); msg != "" {
				errs = append(errs, FieldError{Field: name, Message: msg})
				break
			}
		}
	}

	return errs
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

func applyRule(rule, field string, v reflect.Value) string {
	key, param, _ := strings.Cut(rule, "=")

	if key == "required" {
		if isEmpty(v) {
			return fmt.Sprintf("The %s field is required.", field)
		}
		return ""
	}

	// Remaining rules have nothing to check on a nil pointer.
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	switch key {
	case "min", "max":
		if num, ok := toDecimal(v); ok {
			limit := mustDecimal(param)
			if key == "min" && num.LessThan(limit) {
				return fmt.Sprintf("The %s must be at least %s.", field, param)
			}
			if key == "max" && num.GreaterThan(limit) {
				return fmt.Sprintf("The %s must not be greater than %s.", field, param)
			}
			return ""
		}
		n, _ := strconv.Atoi(param)
		length := len([]rune(asString(v)))
		if key == "min" && length < n {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		if key == "max" && length > n {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
	case "gt", "gte", "lt", "lte":
		num, ok := toDecimal(v)
		if !ok {
			return fmt.Sprintf("The %s field must be a number.", field)
		}
		limit := mustDecimal(param)
		switch {
		case key == "gt" && !num.GreaterThan(limit):
			return fmt.Sprintf("The %s must be greater than %s.", field, param)
		case key == "gte" && num.LessThan(limit):
			return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
		case key == "lt" && !num.LessThan(limit):
			return fmt.Sprintf("The %s must be less than %s.", field, param)
		case key == "lte" && num.GreaterThan(limit):
			return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
		}
	}

	return ""
}

func isEmpty(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map, reflect.Array:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	}
	// A zero decimal is a real amount, not an absent one.
	return false
}

func toDecimal(v reflect.Value) (decimal.Decimal, bool) {
	if v.Type() == decimalType {
		return v.Interface().(decimal.Decimal), true
	}
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return decimal.NewFromInt(int64(v.Uint())), true
	case reflect.Float32, reflect.Float64:
		return decimal.NewFromFloat(v.Float()), true
	}
	return decimal.Decimal{}, false
}

func asString(v reflect.Value) string {
	if v.Kind() == reflect.String {
		return v.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	if name == "" || name == "-" {
		return strings.ToLower(f.Name[:1]) + f.Name[1:]
	}
	return name
}

func hasRule(rules []string, target string) bool {
	for _, r := range rules {
		if strings.TrimSpace(r) == target {
			return true
		}
	}
	return false
}
