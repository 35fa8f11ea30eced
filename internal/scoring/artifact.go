// Package scoring оценивает вероятность ухода клиента по обученной
// логистической регрессии, сохранённой в JSON-артефакте.
package scoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// Число признаков и интервалов дискретизации, с которыми обучена модель.
const (
	FeatureCount = 10
	BinCount     = 4
)

const defaultThreshold = 0.5

var (
	// ErrInvalidArtifact возвращается для артефакта с неверной структурой.
	ErrInvalidArtifact = errors.New("invalid model artifact")
	// ErrInvalidInput возвращается для входа, который нельзя оценить.
	ErrInvalidInput = errors.New("invalid prediction input")
)

// Artifact сериализованные параметры модели и дискретизаторов.
// Границы интервалов хранятся как у KBinsDiscretizer: BinCount+1 возрастающих значений.
type Artifact struct {
	Version         string    `json:"version"`
	Intercept       float64   `json:"intercept"`
	Coefficients    []float64 `json:"coefficients"`
	Threshold       float64   `json:"threshold,omitempty"`
	MonthlyBinEdges []float64 `json:"monthly_bin_edges"`
	TenureBinEdges  []float64 `json:"tenure_bin_edges"`
}

// LoadArtifact читает артефакт из файла path и проверяет его.
func LoadArtifact(path string) (*Artifact, error) {
	const op = "scoring.LoadArtifact"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer f.Close()

	a, err := ParseArtifact(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return a, nil
}

// ParseArtifact декодирует и проверяет артефакт.
func ParseArtifact(r io.Reader) (*Artifact, error) {
	var a Artifact
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArtifact, err)
	}
	if a.Threshold == 0 {
		a.Threshold = defaultThreshold
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate проверяет размерности, конечность значений и порядок границ.
func (a *Artifact) Validate() error {
	if a.Version == "" {
		return fmt.Errorf("%w: empty version", ErrInvalidArtifact)
	}
	if len(a.Coefficients) != FeatureCount {
		return fmt.Errorf("%w: want %d coefficients, got %d", ErrInvalidArtifact, FeatureCount, len(a.Coefficients))
	}
	if !finite(a.Intercept) || !allFinite(a.Coefficients) {
		return fmt.Errorf("%w: non-finite weights", ErrInvalidArtifact)
	}
	if !(a.Threshold > 0 && a.Threshold < 1) {
		return fmt.Errorf("%w: threshold %v out of (0, 1)", ErrInvalidArtifact, a.Threshold)
	}
	if err := validateEdges("monthly_bin_edges", a.MonthlyBinEdges); err != nil {
		return err
	}
	return validateEdges("tenure_bin_edges", a.TenureBinEdges)
}

func validateEdges(name string, edges []float64) error {
	if len(edges) != BinCount+1 {
		return fmt.Errorf("%w: %s: want %d edges, got %d", ErrInvalidArtifact, name, BinCount+1, len(edges))
	}
	if !allFinite(edges) || !sort.SliceIsSorted(edges, func(i, j int) bool { return edges[i] < edges[j] }) {
		return fmt.Errorf("%w: %s must be finite and ascending", ErrInvalidArtifact, name)
	}
	for i := 1; i < len(edges); i++ {
		if edges[i] == edges[i-1] {
			return fmt.Errorf("%w: %s has duplicate edge %v", ErrInvalidArtifact, name, edges[i])
		}
	}
	return nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func allFinite(xs []float64) bool {
	for _, x := range xs {
		if !finite(x) {
			return false
		}
	}
	return true
}
