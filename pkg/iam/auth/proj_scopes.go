package auth

import "strings"

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - candidate/job matching
// ============================================================================

const (
	ScopeAll = "*"

	// Job scopes
	ScopeJobsAll   = "jobs:*"
	ScopeJobsRead  = "jobs:read"
	ScopeJobsWrite = "jobs:write"

	// Candidate scopes
	ScopeCandidatesAll   = "candidates:*"
	ScopeCandidatesRead  = "candidates:read"
	ScopeCandidatesWrite = "candidates:write"

	// Profile scopes (the caller's own candidate profile)
	ScopeProfileRead  = "profile:read"
	ScopeProfileWrite = "profile:write"

	// Match scopes
	ScopeMatchesJobs       = "matches:jobs"       // Recommended jobs for the caller
	ScopeMatchesCandidates = "matches:candidates" // Ranked candidates for an owned job
)

// DomainScopeDescriptions provides descriptions for domain scopes
var DomainScopeDescriptions = map[string]string{
	ScopeAll:               "Full access",
	ScopeJobsAll:           "Full access to job management",
	ScopeJobsRead:          "View jobs",
	ScopeJobsWrite:         "Create jobs",
	ScopeCandidatesAll:     "Full access to candidate data",
	ScopeCandidatesRead:    "View candidates",
	ScopeCandidatesWrite:   "Edit candidates",
	ScopeProfileRead:       "View own candidate profile",
	ScopeProfileWrite:      "Import profile, chat with the coach and submit ikigai",
	ScopeMatchesJobs:       "View job recommendations",
	ScopeMatchesCandidates: "View ranked candidates for own jobs",
}

// RoleScopes maps each account role to the scopes its tokens carry
var RoleScopes = map[Role][]string{
	RoleCandidate: {
		ScopeJobsRead,
		ScopeProfileRead,
		ScopeProfileWrite,
		ScopeMatchesJobs,
	},
	RoleCompany: {
		ScopeJobsAll,
		ScopeCandidatesRead,
		ScopeMatchesCandidates,
	},
}

// ScopesForRole returns a copy of the role's scopes; unknown roles get none
func ScopesForRole(role Role) []string {
	scopes := RoleScopes[role]
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}

// ScopeGranted reports whether any granted scope covers required,
// honoring "*" and "resource:*" wildcards
func ScopeGranted(granted []string, required string) bool {
	resource, _, _ := strings.Cut(required, ":")
	for _, s := range granted {
		switch {
		case s == required, s == ScopeAll:
			return true
		case strings.HasSuffix(s, ":*") && strings.TrimSuffix(s, ":*") == resource:
			return true
		}
	}
	return false
}
