package service

import (
	"strings"

	"gorm.io/datatypes"
)

// Role names used by the profile update policy.
const (
	RoleStudent = "student"
	RoleMentor  = "mentor"
	RoleAdmin   = "admin"
)

// profilePolicy maps a role to the set of columns its owner may update.
// Fields outside the set are silently dropped from the patch, not rejected.
// The approval columns and capability flags are absent from every owner
// policy: only the review flow writes those.
var profilePolicy = map[string]map[string]struct{}{
	RoleStudent: fieldSet(
		"name", "email", "grade_level", "bio", "preferred_subjects",
		"profile_image_url", "address", "emergency_contact",
	),
	RoleMentor: fieldSet(
		"name", "email", "bio", "expertise", "years_experience",
		"profile_image_url", "address",
	),
	RoleAdmin: fieldSet(
		"name", "email", "title", "profile_image_url",
	),
}

func fieldSet(fields ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		set[field] = struct{}{}
	}
	return set
}

// filterProfileUpdates drops every candidate column the role is not allowed
// to touch. All role services funnel their patches through this one path.
func filterProfileUpdates(role string, candidates map[string]interface{}) map[string]interface{} {
	allowed := profilePolicy[strings.ToLower(strings.TrimSpace(role))]
	filtered := make(map[string]interface{}, len(candidates))
	for field, value := range candidates {
		if _, ok := allowed[field]; ok {
			filtered[field] = value
		}
	}
	return filtered
}

// mergeShallow overlays patch keys onto the existing document. Keys absent
// from the patch are preserved; keys present overwrite, including nulls.
func mergeShallow(existing datatypes.JSONMap, patch map[string]interface{}) datatypes.JSONMap {
	merged := datatypes.JSONMap{}
	for key, value := range existing {
		merged[key] = value
	}
	for key, value := range patch {
		merged[key] = value
	}
	return merged
}

// splitAndTrim turns a comma separated list into its trimmed non-empty parts.
func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
