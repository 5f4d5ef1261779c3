package veriff

// SessionDefaults collects every placeholder the adapter substitutes for an
// omitted field, in one named object instead of literals scattered through
// the payload builders.
type SessionDefaults struct {
	FirstName       string
	LastName        string
	DocumentType    string
	DocumentCountry string
	Lang            string
	Theme           string
	ProofOfAddress  []string
	Consents        []Consent
}

func DefaultSession() SessionDefaults {
	return SessionDefaults{
		FirstName:       "John",
		LastName:        "Doe",
		DocumentType:    "passport",
		DocumentCountry: "US",
		Lang:            "en",
		Theme:           "light",
		ProofOfAddress:  []string{"UTILITY_BILL", "BANK_STATEMENT", "RENTAL_AGREEMENT"},
		Consents: []Consent{
			{Type: "ine", Approved: true},
			{Type: "document_verification", Approved: true},
		},
	}
}

func (d SessionDefaults) proofOfAddress() *ProofOfAddress {
	types := make([]AcceptableType, 0, len(d.ProofOfAddress))
	for _, name := range d.ProofOfAddress {
		types = append(types, AcceptableType{Name: name})
	}
	return &ProofOfAddress{AcceptableTypes: types}
}
