package fieldvault

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/fieldvault/pkg/core"
)

// DefaultNodeFile is the vault-relative path of the node summary.
const DefaultNodeFile = "NodeSummary.yaml"

// LoadNodes reads and validates the node summary YAML file.
// A structural problem (bad YAML, nameless node, duplicate sensor) is a
// configuration error for the whole run.
func LoadNodes(path string) ([]core.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read node file: %w", err)
	}

	var set core.NodeSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("invalid node file %s: %w", path, err)
	}

	if len(set.Nodes) == 0 {
		return nil, fmt.Errorf("node file %s defines no nodes", path)
	}

	for _, n := range set.Nodes {
		if n.Name == "" {
			return nil, fmt.Errorf("node file %s: node without a name", path)
		}
		if len(n.SensorPlatforms) == 0 {
			return nil, fmt.Errorf("node %s: no sensor platforms defined", n.Name)
		}
		seen := make(map[string]bool, len(n.SensorPlatforms))
		for _, s := range n.SensorPlatforms {
			if s == "" {
				return nil, fmt.Errorf("node %s: empty sensor platform name", n.Name)
			}
			if seen[s] {
				return nil, fmt.Errorf("node %s: duplicate sensor platform %q", n.Name, s)
			}
			seen[s] = true
		}
	}

	return set.Nodes, nil
}
