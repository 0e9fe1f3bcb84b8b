package planner

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/snowswarm/snowswarm/pkg/models"
)

// rolesConfig represents the team section of a .snowswarm.yaml file.
// Only listed task types are overridden; everything else keeps the
// default policy.
type rolesConfig struct {
	Team struct {
		Overrides []struct {
			TaskType        string   `yaml:"task_type"`
			PrimaryRole     string   `yaml:"primary_role"`
			SupportingRoles []string `yaml:"supporting_roles"`
		} `yaml:"overrides"`
	} `yaml:"team"`
}

// LoadRoleTable reads role-table overrides from a .snowswarm.yaml file and
// applies them on top of the defaults. A missing file is not an error and
// yields the default table; a malformed file or an unknown task type or
// role is.
func LoadRoleTable(path string) (*RoleTable, error) {
	table := NewRoleTable()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return table, nil
		}
		return nil, fmt.Errorf("read role config: %w", err)
	}

	var cfg rolesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse role config %s: %w", path, err)
	}

	for _, o := range cfg.Team.Overrides {
		tt := models.TaskType(o.TaskType)
		if !tt.Valid() {
			return nil, fmt.Errorf("role config %s: unknown task type %q", path, o.TaskType)
		}
		if o.PrimaryRole != "" {
			r := models.Role(o.PrimaryRole)
			if !r.Valid() {
				return nil, fmt.Errorf("role config %s: unknown role %q", path, o.PrimaryRole)
			}
			table.primary[tt] = r
		}
		if o.SupportingRoles != nil {
			roles := make([]models.Role, 0, len(o.SupportingRoles))
			for _, name := range o.SupportingRoles {
				r := models.Role(name)
				if !r.Valid() {
					return nil, fmt.Errorf("role config %s: unknown role %q", path, name)
				}
				roles = append(roles, r)
			}
			table.support[tt] = roles
		}
	}

	return table, nil
}
