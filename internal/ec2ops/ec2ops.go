package ec2ops

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"lambda-handlers/internal/config"
)

type EC2API interface {
	RunInstancesWithContext(aws.Context, *ec2.RunInstancesInput, ...request.Option) (*ec2.Reservation, error)
	DescribeInstancesPagesWithContext(aws.Context, *ec2.DescribeInstancesInput, func(*ec2.DescribeInstancesOutput, bool) bool, ...request.Option) error
	CreateSecurityGroupWithContext(aws.Context, *ec2.CreateSecurityGroupInput, ...request.Option) (*ec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngressWithContext(aws.Context, *ec2.AuthorizeSecurityGroupIngressInput, ...request.Option) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
}

// Distro names an operating system image the launcher knows about.
type Distro string

const (
	Ubuntu          Distro = "ubuntu"
	AmazonLinux2023 Distro = "linux 2023"
	AmazonLinux2    Distro = "linux 2"
)

var ErrUnsupportedDistro = errors.New("unsupported instance type")

// apacheUserData installs and starts apache2 on first boot.
const apacheUserData = `#!/bin/bash
apt update -y
apt-get install -y apache2
systemctl start apache2
systemctl enable apache2
`

// ParseDistro matches s case-insensitively against the supported distros.
func ParseDistro(s string) (Distro, error) {
	d := Distro(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case Ubuntu, AmazonLinux2023, AmazonLinux2:
		return d, nil
	}

	return "", errors.Wrapf(ErrUnsupportedDistro, "%q", s)
}

type Launcher struct {
	client EC2API
	cfg    config.EC2
}

func NewLauncher(client EC2API, cfg config.EC2) *Launcher {
	return &Launcher{client: client, cfg: cfg}
}

func (l *Launcher) image(d Distro) (ami string, userData string) {
	switch d {
	case Ubuntu:
		return l.cfg.UbuntuAMI, apacheUserData
	case AmazonLinux2023:
		return l.cfg.AL2023AMI, ""
	default:
		return l.cfg.AL2AMI, ""
	}
}

// Launch starts count instances of d in a single request and returns their ids.
func (l *Launcher) Launch(ctx context.Context, d Distro, count int) ([]string, error) {
	ami, userData := l.image(d)
	input := &ec2.RunInstancesInput{
		ImageId:          aws.String(ami),
		InstanceType:     aws.String(l.cfg.InstanceType),
		KeyName:          aws.String(l.cfg.KeyName),
		MinCount:         aws.Int64(int64(count)),
		MaxCount:         aws.Int64(int64(count)),
		SecurityGroupIds: aws.StringSlice(l.cfg.SecurityGroupIDs),
	}
	if userData != "" {
		// boto encodes user data itself, the Go SDK expects it already encoded
		input.UserData = aws.String(base64.StdEncoding.EncodeToString([]byte(userData)))
	}
	reservation, err := l.client.RunInstancesWithContext(ctx, input)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to run %d %s instance(s)", count, d)
	}

	return lo.Map(reservation.Instances, func(i *ec2.Instance, _ int) string {
		return aws.StringValue(i.InstanceId)
	}), nil
}

type InstanceSummary struct {
	InstanceID   string `json:"instance_id"`
	InstanceType string `json:"instance_type"`
	State        string `json:"state"`
	ImageID      string `json:"image_id"`
	PublicIP     string `json:"public_ip,omitempty"`
}

// ListInstances walks every DescribeInstances page and flattens the reservations.
func ListInstances(ctx context.Context, client EC2API) ([]InstanceSummary, error) {
	var reservations []*ec2.Reservation
	err := client.DescribeInstancesPagesWithContext(ctx, &ec2.DescribeInstancesInput{},
		func(page *ec2.DescribeInstancesOutput, _ bool) bool {
			reservations = append(reservations, page.Reservations...)
			return true
		})
	if err != nil {
		return nil, errors.Wrap(err, "failed to describe instances")
	}
	instances := lo.FlatMap(reservations, func(r *ec2.Reservation, _ int) []*ec2.Instance {
		return r.Instances
	})

	return lo.Map(instances, func(i *ec2.Instance, _ int) InstanceSummary {
		s := InstanceSummary{
			InstanceID:   aws.StringValue(i.InstanceId),
			InstanceType: aws.StringValue(i.InstanceType),
			ImageID:      aws.StringValue(i.ImageId),
			PublicIP:     aws.StringValue(i.PublicIpAddress),
		}
		if i.State != nil {
			s.State = aws.StringValue(i.State.Name)
		}
		return s
	}), nil
}
