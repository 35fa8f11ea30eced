package analytics

import (
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
)

type staticStore struct {
	d *models.Dataset
}

func (s staticStore) Snapshot() *models.Dataset { return s.d }

func total(v float64) *float64 { return &v }

func rec(tenure int, monthly float64, churn string) models.Record {
	return models.Record{
		Gender:          "Female",
		Partner:         "No",
		Dependents:      "No",
		Tenure:          tenure,
		PhoneService:    "Yes",
		InternetService: "DSL",
		Contract:        "Month-to-month",
		PaymentMethod:   "Electronic check",
		MonthlyCharges:  monthly,
		TotalCharges:    total(monthly * float64(tenure)),
		Churn:           churn,
	}
}

// threeRows три клиента с разным стажем и платежом.
func threeRows() *models.Dataset {
	return models.NewDataset([]models.Record{
		rec(1, 50, models.ChurnYes),
		rec(10, 90, models.ChurnNo),
		rec(30, 85, models.ChurnYes),
	})
}

func mixedRows() *models.Dataset {
	rows := []models.Record{
		rec(1, 25, models.ChurnYes),
		rec(2, 70.5, models.ChurnNo),
		rec(5, 99.9, models.ChurnYes),
		rec(12, 45, models.ChurnNo),
		rec(24, 81, models.ChurnNo),
		rec(25, 110, models.ChurnYes),
		rec(60, 20, models.ChurnNo),
		rec(72, 119.5, models.ChurnNo),
	}
	rows[1].InternetService = "Fiber optic"
	rows[2].InternetService = "Fiber optic"
	rows[6].InternetService = "No"
	rows[3].Contract = "One year"
	rows[5].Contract = "Two year"
	rows[7].Contract = "Two year"
	rows[2].Gender = "Male"
	rows[4].Gender = "Male"
	rows[5].SeniorCitizen = true
	rows[6].TotalCharges = nil
	return models.NewDataset(rows)
}
