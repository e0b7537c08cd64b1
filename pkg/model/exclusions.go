package model

// Exclusions maps a model name to the field names omitted from its table.
// Entries apply to the named model only; the same field name on another model
// is unaffected.
type Exclusions map[string][]string

// Excludes reports whether field is excluded for the model named modelName.
func (e Exclusions) Excludes(modelName, field string) bool {
	if len(e) == 0 {
		return false
	}
	for _, candidate := range e[modelName] {
		if candidate == field {
			return true
		}
	}
	return false
}
