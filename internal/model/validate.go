package model

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// ValidateStartJob validates job-start metadata against the embedded schema.
func ValidateStartJob(m map[string]interface{}) error {
	schemaLoader := gojsonschema.NewStringLoader(startJobSchema)
	docLoader := gojsonschema.NewGoLoader(m)

	res, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return err
	}
	if res.Valid() {
		return nil
	}
	// collect errors
	msgs := ""
	for _, e := range res.Errors() {
		msgs += fmt.Sprintf("%s; ", e.String())
	}
	return fmt.Errorf("schema validation failed: %s", msgs)
}
