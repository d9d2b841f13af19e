package ec2ops

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	securityGroupPrefix      = "sglambda"
	securityGroupDescription = "security group from lambda"
)

// SecurityGroupName returns the prefix followed by the last 12 characters of a random uuid.
func SecurityGroupName() string {
	return securityGroupPrefix + uuid.NewString()[24:]
}

type SecurityGroups struct {
	client  EC2API
	newName func() string
}

func NewSecurityGroups(client EC2API) *SecurityGroups {
	return &SecurityGroups{client: client, newName: SecurityGroupName}
}

// CreateWebGroup creates a uniquely named group and opens tcp/80 to the world.
func (s *SecurityGroups) CreateWebGroup(ctx context.Context) (string, *ec2.AuthorizeSecurityGroupIngressOutput, error) {
	created, err := s.client.CreateSecurityGroupWithContext(ctx, &ec2.CreateSecurityGroupInput{
		Description: aws.String(securityGroupDescription),
		GroupName:   aws.String(s.newName()),
	})
	if err != nil {
		return "", nil, errors.Wrap(err, "failed to create security group")
	}
	groupID := aws.StringValue(created.GroupId)

	authorized, err := s.client.AuthorizeSecurityGroupIngressWithContext(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
		GroupId: aws.String(groupID),
		IpPermissions: []*ec2.IpPermission{
			{
				FromPort:   aws.Int64(80),
				ToPort:     aws.Int64(80),
				IpProtocol: aws.String("tcp"),
				IpRanges: []*ec2.IpRange{
					{CidrIp: aws.String("0.0.0.0/0"), Description: aws.String("HTTP ACCESS")},
				},
			},
		},
	})
	if err != nil {
		return groupID, nil, errors.Wrapf(err, "failed to authorize ingress for %s", groupID)
	}

	return groupID, authorized, nil
}
