package model

// StartJobRequest is the optional metadata accepted alongside an uploaded
// resume on the async job endpoint.
type StartJobRequest struct {
	UserID   string `json:"userId,omitempty"`
	Language string `json:"language,omitempty"`
	Notes    string `json:"notes,omitempty"`
}

// startJobSchema constrains the metadata form field. Unknown keys are
// rejected so typos surface immediately instead of being silently dropped.
const startJobSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "userId": {
      "type": "string",
      "pattern": "^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$"
    },
    "language": {
      "type": "string",
      "maxLength": 32
    },
    "notes": {
      "type": "string",
      "maxLength": 500
    }
  },
  "additionalProperties": false
}`
