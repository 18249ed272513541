package mappers

// nullableString stores empty strings as NULL so unique indexes on optional
// columns do not collide.
func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
