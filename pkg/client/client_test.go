package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoOptions_Defaults(t *testing.T) {
	opts := MongoOptions{URI: "mongodb://localhost:27017", ConnectTimeout: 3 * time.Second}.clientOptions()

	require.NotNil(t, opts.MaxPoolSize)
	assert.EqualValues(t, defaultMaxPoolSize, *opts.MaxPoolSize)
	require.NotNil(t, opts.ServerSelectionTimeout)
	assert.Equal(t, 3*time.Second, *opts.ServerSelectionTimeout)
	assert.Nil(t, opts.AppName)
}

func TestMongoOptions_AppNameAndPool(t *testing.T) {
	opts := MongoOptions{URI: "mongodb://localhost:27017", AppName: "reservations", MaxPoolSize: 5}.clientOptions()

	require.NotNil(t, opts.AppName)
	assert.Equal(t, "reservations", *opts.AppName)
	assert.EqualValues(t, 5, *opts.MaxPoolSize)
}

func TestClose_NotConnected(t *testing.T) {
	c := NewClient()
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}
