// Package core holds the domain entities of fieldvault.
package core

// Node is a data-collection node hosting one or more sensor platforms.
// It is the unit the generator iterates over: each node owns a folder
// tree and a projects-summary table.
type Node struct {
	Name            string   `yaml:"name"`
	SensorPlatforms []string `yaml:"SensorPlatforms"`
}

// NodeSet is the top-level document of the node summary YAML file.
type NodeSet struct {
	Nodes []Node `yaml:"nodes"`
}

// HasSensor reports whether the node defines the given sensor platform.
func (n Node) HasSensor(name string) bool {
	for _, s := range n.SensorPlatforms {
		if s == name {
			return true
		}
	}
	return false
}

// ProjectRow is one row of a node's projects-summary table: a project
// name plus a flag per sensor platform stating whether the sensor
// collects data for this project.
type ProjectRow struct {
	Name    string
	Sensors map[string]bool
}

// EnabledSensors returns the flagged sensors in the order the node
// declares them. Node order keeps folder creation deterministic.
func (p ProjectRow) EnabledSensors(node Node) []string {
	var out []string
	for _, s := range node.SensorPlatforms {
		if p.Sensors[s] {
			out = append(out, s)
		}
	}
	return out
}

// FieldEntry is one row of a project's field log: a day of data
// collection at a site with a given sensor.
type FieldEntry struct {
	Year          int
	Month         int
	Day           int
	Sensor        string
	Technician    string
	Runs          int
	Site          string
	MakeNotesFile bool
	CheckSum      string // empty until computed and written back
}
