package permission

import (
	"fmt"

	"github.com/cerberus-dev/cerberus/internal/shared/authorization"
)

// SeedDefaults loads the built-in capabilities into an empty policy store.
// A store that already holds rules is left alone so edits made by admins
// survive restarts.
func (e *Enforcer) SeedDefaults() (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	existing, err := e.enforcer.GetPolicy()
	if err != nil {
		return 0, fmt.Errorf("failed to read policy: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	caps := authorization.DefaultCapabilities()
	rules := make([][]string, 0, len(caps))
	for _, c := range caps {
		rules = append(rules, []string{string(c.Role), string(c.Resource), string(c.Action)})
	}

	if _, err := e.enforcer.AddPolicies(rules); err != nil {
		e.logger.Errorw("failed to seed permission policy", "error", err)
		return 0, fmt.Errorf("failed to seed policy: %w", err)
	}

	e.logger.Infow("permission policy seeded", "rules", len(rules))
	return len(rules), nil
}
