package domain

// dispatchRules maps incident types to the operator roles allowed to
// handle them.
var dispatchRules = map[IncidentType][]string{
	TypeInfrastructure: {"admin", "network_engineer", "system_admin"},
	TypeSecurity:       {"security_analyst", "admin", "incident_responder"},
	TypeApplication:    {"developer", "app_support", "admin"},
}

// RolesFor returns the operator roles allowed to handle the incident type.
func RolesFor(typ IncidentType) []string {
	return dispatchRules[typ]
}

// DefaultOperators returns the operator roster seeded into an empty store.
func DefaultOperators() []*Operator {
	return []*Operator{
		{ID: "carlos", Name: "Carlos", Roles: []string{"admin", "system_admin"}, Available: true},
		{ID: "ana", Name: "Ana", Roles: []string{"security_analyst", "incident_responder"}, Available: true},
		{ID: "miguel", Name: "Miguel", Roles: []string{"developer", "app_support"}, Available: true},
		{ID: "sofia", Name: "Sofia", Roles: []string{"network_engineer", "system_admin"}, Available: true},
		{ID: "admin", Name: "Admin", Roles: []string{"admin", "security_analyst", "developer", "network_engineer"}, Available: true},
	}
}
