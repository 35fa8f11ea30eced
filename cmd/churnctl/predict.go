package main

import (
	"github.com/spf13/cobra"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/models"
	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/scoring"
)

func newPredictCmd() *cobra.Command {
	var (
		modelPath string
		in        models.PredictionInput
	)

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Score one customer with the model artifact",
		Long: `Score one customer with the trained model artifact.

Example: churnctl predict --contract Month-to-month --internet "Fiber optic" --monthly 95.5 --tenure 3 --payment 2`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			model, err := scoring.Load(modelPath)
			if err != nil {
				return err
			}
			out, err := model.Predict(in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}

	f := cmd.Flags()
	f.StringVar(&modelPath, "model", "model/churn_model.json", "Path to the model artifact")
	f.StringVar(&in.Contract, "contract", "Month-to-month", "Contract type")
	f.StringVar(&in.InternetService, "internet", "DSL", "Internet service")
	f.Float64Var(&in.MonthlyCharges, "monthly", 0, "Monthly charges")
	f.IntVar(&in.Tenure, "tenure", 0, "Tenure in months")
	f.IntVar(&in.PaymentMethod, "payment", 0, "Encoded payment method")
	return cmd
}
