package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps named HTTP routes to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Public
	"Health":    SecurityPublic,
	"ListClubs": SecurityPublic,
	"GetClub":   SecurityPublic,

	// Club directory - Access Protected
	"UpdateClub":       SecurityAccess,
	"ListMembers":      SecurityAccess,
	"ListJoinRequests": SecurityAccess,

	// Membership workflow - Access Protected
	"JoinClub":             SecurityAccess,
	"ApproveRequest":       SecurityAccess,
	"DenyRequest":          SecurityAccess,
	"ActivateMembership":   SecurityAccess,
	"DeactivateMembership": SecurityAccess,

	// Waitlist invitations - Access Protected
	"AcceptInvitation":  SecurityAccess,
	"DeclineInvitation": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given route name
func GetSecurityLevel(route string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[route]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
