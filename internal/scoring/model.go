package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

// Индексы интервалов, которые модель кодирует отдельными признаками.
const (
	binLow      = 0
	binMedium   = 1
	binHigh     = 2
	binVeryHigh = 3
)

// Model неизменяемая модель скоринга, безопасна для конкурентного использования.
type Model struct {
	artifact Artifact
}

// New создаёт модель из проверенного артефакта.
func New(a *Artifact) (*Model, error) {
	const op = "scoring.New"

	if a == nil {
		return nil, fmt.Errorf("%s: %w: nil artifact", op, ErrInvalidArtifact)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	cp := *a
	cp.Coefficients = append([]float64(nil), a.Coefficients...)
	cp.MonthlyBinEdges = append([]float64(nil), a.MonthlyBinEdges...)
	cp.TenureBinEdges = append([]float64(nil), a.TenureBinEdges...)
	return &Model{artifact: cp}, nil
}

// Load читает артефакт из файла и создаёт модель.
func Load(path string) (*Model, error) {
	a, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return New(a)
}

// Version возвращает версию артефакта.
func (m *Model) Version() string {
	return m.artifact.Version
}

// Transform превращает вход в вектор признаков в порядке обучения:
// PaymentMethod, HasInternet, ContractLong, ContractShort,
// MonthlyVeryHigh, MonthlyMedium, MonthlyLow, TenureVeryHigh, TenureHigh, TenureLow.
func (m *Model) Transform(in models.PredictionInput) ([]float64, error) {
	if !finite(in.MonthlyCharges) || in.MonthlyCharges < 0 {
		return nil, fmt.Errorf("%w: MonthlyCharges %v", ErrInvalidInput, in.MonthlyCharges)
	}
	if in.Tenure < 0 {
		return nil, fmt.Errorf("%w: tenure %d", ErrInvalidInput, in.Tenure)
	}

	contractLong, contractShort := 1.0, 0.0
	if strings.Contains(strings.ToLower(in.Contract), "month") {
		contractLong, contractShort = 0, 1
	}
	hasInternet := 1.0
	if strings.Contains(strings.ToLower(in.InternetService), "no") {
		hasInternet = 0
	}

	monthly := binIndex(m.artifact.MonthlyBinEdges, in.MonthlyCharges)
	tenure := binIndex(m.artifact.TenureBinEdges, float64(in.Tenure))

	return []float64{
		float64(in.PaymentMethod),
		hasInternet,
		contractLong,
		contractShort,
		flag(monthly == binVeryHigh),
		flag(monthly == binMedium),
		flag(monthly == binLow),
		flag(tenure == binVeryHigh),
		flag(tenure == binHigh),
		flag(tenure == binLow),
	}, nil
}

// Predict оценивает вход. Результат детерминирован для фиксированного артефакта.
func (m *Model) Predict(in models.PredictionInput) (models.PredictionOutput, error) {
	const op = "scoring.Predict"

	features, err := m.Transform(in)
	if err != nil {
		return models.PredictionOutput{}, fmt.Errorf("%s: %w", op, err)
	}

	p := sigmoid(m.artifact.Intercept + floats.Dot(m.artifact.Coefficients, features))
	if !finite(p) {
		return models.PredictionOutput{}, fmt.Errorf("%s: %w: non-finite probability", op, ErrInvalidInput)
	}

	out := models.PredictionOutput{
		Probability:     p,
		PredictionLabel: models.LabelNoChurn,
		Features:        features,
	}
	if p >= m.artifact.Threshold {
		out.Prediction = 1
		out.PredictionLabel = models.LabelChurn
	}
	return out, nil
}

// binIndex повторяет KBinsDiscretizer: число внутренних границ не больше x,
// ограниченное диапазоном [0, len(edges)-2].
func binIndex(edges []float64, x float64) int {
	inner := edges[1 : len(edges)-1]
	i := sort.Search(len(inner), func(i int) bool { return inner[i] > x })
	return min(max(i, 0), len(edges)-2)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
