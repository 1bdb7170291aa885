package schema

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed problem.schema.json
var problemSchemaJSON string

// defaultPrinter is used to format schema validation error messages.
var defaultPrinter = message.NewPrinter(language.English)

// problemSchema is the compiled JSON Schema for serialized problem records.
var problemSchema *jsonschema.Schema

func init() {
	problemSchema = mustCompileSchema(problemSchemaJSON, "problem.schema.json")
}

func mustCompileSchema(raw string, name string) *jsonschema.Schema {
	var schemaDoc any
	if err := json.Unmarshal([]byte(raw), &schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, schemaDoc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ValidateProblemBytes validates one serialized problem record against the
// embedded JSON Schema. Returns human-readable messages, empty when valid.
func ValidateProblemBytes(data []byte) []string {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return []string{fmt.Sprintf("invalid JSON: %v", err)}
	}

	if err := problemSchema.Validate(doc); err != nil {
		var verr *jsonschema.ValidationError
		if errors.As(err, &verr) {
			return flattenValidationError(verr)
		}
		return []string{err.Error()}
	}
	return nil
}

func flattenValidationError(verr *jsonschema.ValidationError) []string {
	var msgs []string
	for _, cause := range verr.Causes {
		msgs = append(msgs, flattenValidationError(cause)...)
	}
	if len(msgs) == 0 {
		loc := "/"
		if len(verr.InstanceLocation) > 0 {
			loc = ""
			for _, seg := range verr.InstanceLocation {
				loc += "/" + seg
			}
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", loc, verr.ErrorKind.LocalizedString(defaultPrinter)))
	}
	return msgs
}
