package classify

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// rulesFile is the on-disk shape of a rules override.
type rulesFile struct {
	Rules []RuleSpec `yaml:"rules"`
}

// LoadRules builds a classifier from a YAML rules file. A missing or
// empty path returns the built-in defaults; a malformed file is an
// error so bad rules are caught at startup rather than silently
// misclassifying.
func LoadRules(path string) (*Classifier, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	var rf rulesFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}
	if len(rf.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s defines no rules", path)
	}
	return New(rf.Rules)
}
