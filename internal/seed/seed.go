// Package seed loads the initial agenda dataset, either from the embedded
// snapshot or from a remote export endpoint.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/agendape/agenda-api/internal/model"
)

//go:embed data.yaml
var embeddedData []byte

type dataset struct {
	Events []model.RawEventRecord `yaml:"events"`
}

// Records returns the embedded seed records.
func Records() ([]model.RawEventRecord, error) {
	var ds dataset
	if err := yaml.Unmarshal(embeddedData, &ds); err != nil {
		return nil, fmt.Errorf("failed to parse embedded seed data: %w", err)
	}
	return ds.Events, nil
}
