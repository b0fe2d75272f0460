package configs

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// validator checks struct fields against rules in the tag named key,
// e.g. `validate:"required,min=1,max=8"`.
type validator struct {
	key string
}

func New(key string) *validator {
	return &validator{key: key}
}

func (v *validator) Validate(i any) error {
	val := reflect.ValueOf(i)
	typ := val.Type()
	if typ.Kind() != reflect.Struct {
		return errors.Errorf("validate: expected struct, got %s", typ.Kind())
	}

	for idx := range typ.NumField() {
		field := typ.Field(idx)
		tagSTR := field.Tag.Get(v.key)
		if tagSTR == "" {
			continue
		}
		f := val.Field(idx)

		for tag := range strings.SplitSeq(tagSTR, ",") {
			name, arg, _ := strings.Cut(tag, "=")
			if err := checkRule(field.Name, strings.ToLower(name), arg, f); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkRule(fieldName, rule, arg string, f reflect.Value) error {
	switch rule {
	case "required":
		if f.Kind() != reflect.Bool && f.IsZero() {
			return errors.New("required field is empty: " + fieldName)
		}

	case "min", "max":
		if !isInt(f) {
			return nil
		}
		border, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "bad %s tag in field %s", rule, fieldName)
		}
		if rule == "min" && f.Int() < border {
			return errors.Errorf("field %s less than min (%d < %d)", fieldName, f.Int(), border)
		}
		if rule == "max" && f.Int() > border {
			return errors.Errorf("field %s greater than max (%d > %d)", fieldName, f.Int(), border)
		}

	case "len":
		switch f.Kind() {
		case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		default:
			return nil
		}
		lo, hi, ok := strings.Cut(arg, ":")
		if !ok {
			return errors.New("invalid len tag format in field: " + fieldName)
		}
		min, err := strconv.Atoi(lo)
		if err != nil {
			return err
		}
		max, err := strconv.Atoi(hi)
		if err != nil {
			return err
		}
		if f.Len() < min || f.Len() > max {
			return errors.New("field " + fieldName + " length not in range")
		}

	default:
		return errors.New("unknown tag: " + rule + " in field: " + fieldName)
	}
	return nil
}

func isInt(f reflect.Value) bool {
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
