//go:build integration

package decision

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_RealAPI(t *testing.T) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		t.Skip("OPENAI_API_KEY required for integration tests")
	}

	client := NewClient("https://api.openai.com/v1", apiKey, "gpt-4o-mini", logrus.New())
	analyzer := NewAnalyzer(client, logrus.New())

	result := analyzer.Analyze(context.Background(), "Should I quit my stable job to become a full-time street magician?")
	require.NotNil(t, result)
	assert.False(t, result.Fallback)
	assert.GreaterOrEqual(t, result.RiskScore, 0)
	assert.LessOrEqual(t, result.RiskScore, 100)
	assert.NotEmpty(t, result.Explanation)
}
