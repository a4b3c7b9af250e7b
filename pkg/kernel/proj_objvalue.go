package kernel

import (
	"math"
	"strings"
)

type JobTitle string

type JobDescription string

type Skill string

// Embedding is a dense vector produced by an external embedding model.
// Dimensionality is fixed within one source but not across sources.
type Embedding []float32

// Dim returns the number of components
func (e Embedding) Dim() int { return len(e) }

// IsEmpty reports whether the vector carries no components
func (e Embedding) IsEmpty() bool { return len(e) == 0 }

// IsFinite reports whether every component is a finite number
func (e Embedding) IsFinite() bool {
	for _, v := range e {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of the vector
func (e Embedding) Clone() Embedding {
	if e == nil {
		return nil
	}
	out := make(Embedding, len(e))
	copy(out, e)
	return out
}

// Role is the account role used for authorization
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
)

// IsValid checks the role is one the system knows about
func (r Role) IsValid() bool {
	return r == RoleCandidate || r == RoleCompany
}

// SkillsFromStrings trims and drops empty entries
func SkillsFromStrings(values []string) []Skill {
	skills := make([]Skill, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		skills = append(skills, Skill(v))
	}
	return skills
}

// SkillsToStrings converts typed skills to plain strings
func SkillsToStrings(skills []Skill) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		out[i] = string(s)
	}
	return out
}
