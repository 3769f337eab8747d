package core

import (
	"reflect"
	"testing"
)

func TestNodeHasSensor(t *testing.T) {
	n := Node{Name: "Narrabri", SensorPlatforms: []string{"GOBI", "HIRES"}}

	if !n.HasSensor("GOBI") {
		t.Error("HasSensor(GOBI) = false")
	}
	if n.HasSensor("M3M") {
		t.Error("HasSensor(M3M) = true")
	}
}

func TestProjectRowEnabledSensors(t *testing.T) {
	n := Node{Name: "Narrabri", SensorPlatforms: []string{"GOBI", "HIRES", "M3M"}}
	row := ProjectRow{Name: "WheatTrial", Sensors: map[string]bool{
		"M3M":   true,
		"GOBI":  true,
		"HIRES": false,
		"LIDAR": true, // not on the node, ignored
	}}

	// Order follows the node definition, not the map.
	want := []string{"GOBI", "M3M"}
	if got := row.EnabledSensors(n); !reflect.DeepEqual(got, want) {
		t.Errorf("EnabledSensors() = %v, want %v", got, want)
	}
}
