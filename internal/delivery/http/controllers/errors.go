package controllers

import "fmt"

func errRequired(field string) error {
	return fmt.Errorf("%s are required", field)
}

func errInvalid(field, value string) error {
	return fmt.Errorf("invalid %s %q", field, value)
}
