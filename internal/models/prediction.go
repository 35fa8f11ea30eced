package models

// Метки предсказания.
const (
	LabelChurn   = "Churn"
	LabelNoChurn = "No Churn"
)

// PredictionInput входные данные скоринга одного клиента.
type PredictionInput struct {
	Contract        string  `json:"Contract" validate:"required"`        // "Month-to-month", "One year", "Two year"
	InternetService string  `json:"InternetService" validate:"required"` // "DSL", "Fiber optic", "No"
	MonthlyCharges  float64 `json:"MonthlyCharges" validate:"gte=0"`
	Tenure          int     `json:"tenure" validate:"gte=0"`
	PaymentMethod   int     `json:"PaymentMethod" validate:"gte=0"`
}

// PredictionOutput результат скоринга.
type PredictionOutput struct {
	Probability     float64   `json:"probability"`
	Prediction      int       `json:"prediction"`
	PredictionLabel string    `json:"prediction_label"`
	Features        []float64 `json:"features"`
}

// PredictionEvent публикуется в брокер после каждого скоринга.
type PredictionEvent struct {
	ID           string           `json:"id"`
	ModelVersion string           `json:"model_version"`
	Input        PredictionInput  `json:"input"`
	Output       PredictionOutput `json:"output"`
	CreatedAt    string           `json:"created_at"`
}
