package sl_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nabeelimtiaz667/cust-churn-analysis/internal/lib/sl"
)

func TestErr(t *testing.T) {
	attr := sl.Err(errors.New("dataset unavailable"))

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, slog.StringValue("dataset unavailable"), attr.Value)
}

func TestErr_NilError(t *testing.T) {
	attr := sl.Err(nil)

	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "", attr.Value.String())
}

func TestOp(t *testing.T) {
	attr := sl.Op("analytics.ComputeStats")

	assert.Equal(t, "op", attr.Key)
	assert.Equal(t, "analytics.ComputeStats", attr.Value.String())
}
