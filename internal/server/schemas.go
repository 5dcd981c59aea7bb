package server

import "candidate-gateway/internal/common/validation"

func validateAccessCodeSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"accessCode"},
		Properties: map[string]validation.Property{
			"accessCode": {
				Type:        "string",
				Description: "Campaign access code",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(100),
			},
		},
	}
}

func expressInterestSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type:     "object",
		Required: []string{"candidateId", "clientName", "organization", "email"},
		Properties: map[string]validation.Property{
			"candidateId": {
				Type:        "string",
				Description: "Store record id of the candidate",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(64),
			},
			"clientName": {
				Type:        "string",
				Description: "Inquiring client's name",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(255),
			},
			"organization": {
				Type:        "string",
				Description: "Client organization",
				MinLength:   validation.IntPtr(1),
				MaxLength:   validation.IntPtr(255),
			},
			"email": {
				Type:        "string",
				Description: "Client contact email",
				MinLength:   validation.IntPtr(5),
				MaxLength:   validation.IntPtr(255),
			},
			"phone": {
				Type:        "string",
				Description: "Optional phone number",
				MaxLength:   validation.IntPtr(50),
			},
			"notes": {
				Type:        "string",
				Description: "Optional free-text notes",
				MaxLength:   validation.IntPtr(4000),
			},
		},
	}
}
