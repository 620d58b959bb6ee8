package forms

// Errors collects validation messages keyed by form field. The empty
// string key holds form-wide messages.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Any() bool {
	return len(e) > 0
}

func (e Errors) Field(field string) []string {
	return e[field]
}
