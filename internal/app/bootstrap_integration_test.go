package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voxintel/backend/internal/app"
	"voxintel/backend/internal/testutils"
)

func TestBootstrap_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	suite := testutils.NewIntegrationSuite(t)
	suite.Setup()
	defer suite.Teardown()

	cfg := suite.GetAppConfig()

	deps, err := app.Bootstrap(cfg)
	require.NoError(t, err)
	assert.NotNil(t, deps)
	assert.NotNil(t, deps.DB)
	assert.NotNil(t, deps.Publisher)

	// Verify migrations: the documents table must exist
	var exists bool
	err = deps.DB.QueryRow("SELECT EXISTS (SELECT FROM information_schema.tables WHERE table_name = 'documents')").Scan(&exists)
	require.NoError(t, err)
	assert.True(t, exists)
}
