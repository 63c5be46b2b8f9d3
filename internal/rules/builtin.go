package rules

import "github.com/piiscan/piiscan/internal/types"

// builtinDefs is the default rule pack used when no pattern file is
// supplied. Patterns are shape-only: values are not semantically
// validated (no checksum verification).
var builtinDefs = map[types.RiskLevel][]Definition{
	types.RiskHigh: {
		{Name: "ssn", Pattern: `\b\d{3}-\d{2}-\d{4}\b`, Description: "US social security number"},
		{Name: "national_id", Pattern: `\b\d{6}-[1-4]\d{6}\b`, Description: "KR resident registration number"},
		{Name: "credit_card", Pattern: `\b\d{4}[- ]?\d{4}[- ]?\d{4}[- ]?\d{4}\b`, Description: "payment card number"},
		{Name: "passport", Pattern: `\b[A-Z]{1,2}\d{7,8}\b`, Description: "passport number"},
	},
	types.RiskMedium: {
		{Name: "phone", Pattern: `\b\+?\d{2,3}[- ]\d{3,4}[- ]\d{4}\b`, Description: "phone number"},
		{Name: "bank_account", Pattern: `\b\d{3}-\d{2,6}-\d{2,6}\b`, Description: "bank account number"},
		{Name: "date_of_birth", Pattern: `\b(19|20)\d{2}[-/.](0[1-9]|1[0-2])[-/.](0[1-9]|[12]\d|3[01])\b`, Description: "date of birth"},
	},
	types.RiskLow: {
		{Name: "email", Pattern: `\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`, Description: "email address"},
		{Name: "ipv4", Pattern: `\b(?:\d{1,3}\.){3}\d{1,3}\b`, Description: "IPv4 address"},
	},
}

// Default returns the compiled builtin rule set.
func Default() *Set {
	s, err := Compile(builtinDefs)
	if err != nil {
		// builtin patterns are fixed at build time; a failure here is a bug
		panic(err)
	}
	return s
}
