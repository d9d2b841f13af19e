package config

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// EC2 holds the launch settings shared by the instance handlers.
type EC2 struct {
	KeyName          string   `env:"EC2_KEY_NAME" envDefault:"private-ec2" validate:"required"`
	InstanceType     string   `env:"EC2_INSTANCE_TYPE" envDefault:"t2.micro" validate:"required"`
	SecurityGroupIDs []string `env:"EC2_SECURITY_GROUP_IDS" envDefault:"sg-0197b8159a5d886f8" envSeparator:"," validate:"required,min=1,dive,required"`
	UbuntuAMI        string   `env:"EC2_AMI_UBUNTU" envDefault:"ami-09e67e426f25ce0d7" validate:"required"`
	AL2023AMI        string   `env:"EC2_AMI_AL2023" envDefault:"ami-08a0d1e16fc3f61ea" validate:"required"`
	AL2AMI           string   `env:"EC2_AMI_AL2" envDefault:"ami-0eaf7c3456e7b5b68" validate:"required"`
}

type Logs struct {
	LogGroupName  string `env:"LOG_GROUP_NAME" envDefault:"lg_from_lambda" validate:"required,max=512"`
	LogStreamName string `env:"LOG_STREAM_NAME" envDefault:"ls_from_lambda" validate:"required,max=512"`
}

type ObjectStore struct {
	TableName string `env:"TABLE_NAME" envDefault:"s3_keys" validate:"required,min=3,max=255"`
	// Concurrency is the max number of records written at once
	Concurrency int `env:"CONCURRENCY" envDefault:"10" validate:"min=1,max=100"`
}

type Repos struct {
	// NamePrefix leaves room for a 36 character uuid under the 100 character repository name limit
	NamePrefix string `env:"REPO_NAME_PREFIX" envDefault:"lambda-repo-" validate:"max=64"`
}

// Load parses T from the environment and validates it.
func Load[T any]() (T, error) {
	cfg, err := env.ParseAs[T]()
	if err != nil {
		return cfg, errors.Wrap(err, "failed to parse environment")
	}
	if err := validate.Struct(cfg); err != nil {
		return cfg, errors.Wrap(err, "invalid configuration")
	}

	return cfg, nil
}

// Validate checks the validate tags of an incoming event.
func Validate(v any) error {
	return validate.Struct(v)
}

// InLambda reports whether the process runs under the Lambda runtime.
func InLambda() bool {
	return os.Getenv("AWS_LAMBDA_RUNTIME_API") != ""
}
