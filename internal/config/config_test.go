package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEC2(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load[EC2]()
		require.NoError(t, err)
		assert.Equal(t, "private-ec2", cfg.KeyName)
		assert.Equal(t, "t2.micro", cfg.InstanceType)
		assert.Equal(t, []string{"sg-0197b8159a5d886f8"}, cfg.SecurityGroupIDs)
		assert.Equal(t, "ami-09e67e426f25ce0d7", cfg.UbuntuAMI)
		assert.Equal(t, "ami-08a0d1e16fc3f61ea", cfg.AL2023AMI)
		assert.Equal(t, "ami-0eaf7c3456e7b5b68", cfg.AL2AMI)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("EC2_KEY_NAME", "ops")
		t.Setenv("EC2_SECURITY_GROUP_IDS", "sg-1,sg-2")

		cfg, err := Load[EC2]()
		require.NoError(t, err)
		assert.Equal(t, "ops", cfg.KeyName)
		assert.Equal(t, []string{"sg-1", "sg-2"}, cfg.SecurityGroupIDs)
	})

	t.Run("Empty security group id", func(t *testing.T) {
		t.Setenv("EC2_SECURITY_GROUP_IDS", "sg-1,")

		_, err := Load[EC2]()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestLoadObjectStore(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := Load[ObjectStore]()
		require.NoError(t, err)
		assert.Equal(t, "s3_keys", cfg.TableName)
		assert.Equal(t, 10, cfg.Concurrency)
	})

	t.Run("Concurrency is not a number", func(t *testing.T) {
		t.Setenv("CONCURRENCY", "many")

		_, err := Load[ObjectStore]()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse environment")
	})

	t.Run("Concurrency out of range", func(t *testing.T) {
		t.Setenv("CONCURRENCY", "0")

		_, err := Load[ObjectStore]()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}

func TestLoadLogsAndRepos(t *testing.T) {
	t.Setenv("LOG_GROUP_NAME", "test-log-group")

	logs, err := Load[Logs]()
	require.NoError(t, err)
	assert.Equal(t, "test-log-group", logs.LogGroupName)
	assert.Equal(t, "ls_from_lambda", logs.LogStreamName)

	repos, err := Load[Repos]()
	require.NoError(t, err)
	assert.Equal(t, "lambda-repo-", repos.NamePrefix)
}

func TestInLambda(t *testing.T) {
	t.Setenv("AWS_LAMBDA_RUNTIME_API", "")
	assert.False(t, InLambda())

	t.Setenv("AWS_LAMBDA_RUNTIME_API", "127.0.0.1:9001")
	assert.True(t, InLambda())
}
