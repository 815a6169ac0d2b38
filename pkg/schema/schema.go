// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/invopop/jsonschema"
	santhosh "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/sourceyorg/navforge/pkg/api"
)

const resourceName = "navforge-site.json"

// Generate reflects the site configuration model into a JSON Schema
func Generate() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		// Use YAML field names for property names
		FieldNameTag:   "yaml",
		DoNotReference: true,
	}
	schema := r.Reflect(&api.Site{})
	schema.Title = "navforge site configuration"
	schema.Description = "Site metadata, head assets and sidebar of a documentation website."
	schema.Version = "http://json-schema.org/draft-07/schema#"
	return json.MarshalIndent(schema, "", "  ")
}

// Validator validates decoded site configuration documents against the schema
type Validator struct {
	schema *santhosh.Schema
}

// NewValidator compiles the generated schema
func NewValidator() (*Validator, error) {
	b, err := Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}
	compiler := santhosh.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks a document decoded into generic values, see api.ParseDocument.
// Every violation is returned as *api.ConfigurationError naming the offending
// field, collected in a *multierror.Error.
func (v *Validator) Validate(doc interface{}) error {
	// normalize to plain JSON values, e.g. YAML integers and TOML dates
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document to JSON for validation: %w", err)
	}
	var normalized interface{}
	if err := json.Unmarshal(b, &normalized); err != nil {
		return fmt.Errorf("failed to unmarshal JSON for validation: %w", err)
	}
	if err := v.schema.Validate(normalized); err != nil {
		validationErr, ok := err.(*santhosh.ValidationError)
		if !ok {
			return fmt.Errorf("schema validation failed: %w", err)
		}
		violations := leaves(validationErr)
		sort.SliceStable(violations, func(i, j int) bool {
			return before(pointerTokens(violations[i].InstanceLocation), pointerTokens(violations[j].InstanceLocation))
		})
		var errs *multierror.Error
		for _, leaf := range violations {
			for _, cfgErr := range configurationErrors(leaf, normalized) {
				errs = multierror.Append(errs, cfgErr)
			}
		}
		return errs.ErrorOrNil()
	}
	return nil
}

// leaves recursively collects the leaf validation errors
func leaves(err *santhosh.ValidationError) []*santhosh.ValidationError {
	if len(err.Causes) == 0 {
		return []*santhosh.ValidationError{err}
	}
	var out []*santhosh.ValidationError
	for _, cause := range err.Causes {
		out = append(out, leaves(cause)...)
	}
	return out
}

var quoted = regexp.MustCompile(`'([^']*)'`)

// configurationErrors maps a leaf violation to the fields it concerns. Missing
// and unknown properties are reported on the property itself.
func configurationErrors(err *santhosh.ValidationError, doc interface{}) []error {
	tokens := pointerTokens(err.InstanceLocation)
	var reason string
	switch {
	case strings.HasSuffix(err.KeywordLocation, "/required"):
		reason = "is required"
	case strings.HasSuffix(err.KeywordLocation, "/additionalProperties"):
		reason = "is not a known property"
	}
	if reason != "" {
		var errs []error
		for _, match := range quoted.FindAllStringSubmatch(err.Message, -1) {
			errs = append(errs, &api.ConfigurationError{Field: fieldPath(append(tokens, match[1])), Reason: reason})
		}
		if len(errs) > 0 {
			return errs
		}
	}
	return []error{&api.ConfigurationError{
		Field:  fieldPath(tokens),
		Value:  scalarAt(doc, tokens),
		Reason: err.Message,
	}}
}

// before orders instance locations with array indexes compared as numbers,
// so that sidebar[2] comes before sidebar[10]
func before(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		x, errX := strconv.Atoi(a[i])
		y, errY := strconv.Atoi(b[i])
		if errX == nil && errY == nil {
			return x < y
		}
		return a[i] < b[i]
	}
	return len(a) < len(b)
}

func pointerTokens(location string) []string {
	location = strings.TrimPrefix(location, "/")
	if location == "" {
		return nil
	}
	tokens := strings.Split(location, "/")
	for i, token := range tokens {
		tokens[i] = strings.NewReplacer("~1", "/", "~0", "~").Replace(token)
	}
	return tokens
}

// fieldPath converts JSON pointer tokens to a configuration path,
// e.g. sidebar 0 items to sidebar[0].items. The document root is "site".
func fieldPath(tokens []string) string {
	var sb strings.Builder
	for _, token := range tokens {
		if _, err := strconv.Atoi(token); err == nil {
			fmt.Fprintf(&sb, "[%s]", token)
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(token)
	}
	if sb.Len() == 0 {
		return "site"
	}
	return sb.String()
}

// scalarAt returns the scalar value at tokens formatted as text, or "" for
// objects, arrays and absent values
func scalarAt(doc interface{}, tokens []string) string {
	current := doc
	for _, token := range tokens {
		switch node := current.(type) {
		case map[string]interface{}:
			current = node[token]
		case []interface{}:
			i, err := strconv.Atoi(token)
			if err != nil || i < 0 || i >= len(node) {
				return ""
			}
			current = node[i]
		default:
			return ""
		}
	}
	switch value := current.(type) {
	case string, float64, bool:
		return fmt.Sprint(value)
	}
	return ""
}
