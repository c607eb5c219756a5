// Package steps declares the stages of the report pipeline and the
// dependencies between them.
package steps

import (
	"fmt"
	"sort"
)

// Stage names.
const (
	FetchIndex    = "fetch_index"
	ExtractLinks  = "extract_links"
	SelectReport  = "select_report"
	FetchArtifact = "fetch_artifact"
	ExtractTable  = "extract_table"
)

// Stage categories.
const (
	CategoryDiscovery   = "discovery"
	CategorySelection   = "selection"
	CategoryAcquisition = "acquisition"
	CategoryExtraction  = "extraction"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Description  string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	FetchIndex: {
		Name:         FetchIndex,
		Category:     CategoryDiscovery,
		Description:  "Fetch the report index page",
		Dependencies: []string{},
	},
	ExtractLinks: {
		Name:         ExtractLinks,
		Category:     CategoryDiscovery,
		Description:  "Extract report links from the index page",
		Dependencies: []string{FetchIndex},
	},
	SelectReport: {
		Name:         SelectReport,
		Category:     CategorySelection,
		Description:  "Filter report links and select one",
		Dependencies: []string{ExtractLinks},
	},
	FetchArtifact: {
		Name:         FetchArtifact,
		Category:     CategoryAcquisition,
		Description:  "Download the selected workbook",
		Dependencies: []string{SelectReport},
	},
	ExtractTable: {
		Name:         ExtractTable,
		Category:     CategoryExtraction,
		Description:  "Read and validate the trade balance worksheet",
		Dependencies: []string{FetchArtifact},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// ValidateDependencies checks if all required dependencies for a step are completed
func ValidateDependencies(stepName string, completed map[string]bool) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// GetAvailableSteps returns steps not yet completed whose dependencies are met, sorted by name.
func GetAvailableSteps(completed map[string]bool) []string {
	var available []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(stepName, completed); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}

// GetBlockedSteps returns steps whose dependencies are not met, sorted by name.
func GetBlockedSteps(completed map[string]bool) []string {
	var blocked []string
	for stepName := range StepRegistry {
		if completed[stepName] {
			continue
		}
		if err := ValidateDependencies(stepName, completed); err != nil {
			blocked = append(blocked, stepName)
		}
	}
	sort.Strings(blocked)
	return blocked
}

// Order returns the steps in execution order. The registry must form a
// single chain: exactly one step becomes available at a time.
func Order() ([]string, error) {
	completed := make(map[string]bool, len(StepRegistry))
	order := make([]string, 0, len(StepRegistry))

	for len(order) < len(StepRegistry) {
		available := GetAvailableSteps(completed)
		switch len(available) {
		case 0:
			return nil, fmt.Errorf("step registry has a cycle or unknown dependency; blocked: %v", GetBlockedSteps(completed))
		case 1:
		default:
			return nil, fmt.Errorf("step registry branches after %v: %v", order, available)
		}
		completed[available[0]] = true
		order = append(order, available[0])
	}

	return order, nil
}
