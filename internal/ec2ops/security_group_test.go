package ec2ops

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/ec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSecurityGroupName(t *testing.T) {
	name := SecurityGroupName()
	assert.True(t, strings.HasPrefix(name, "sglambda"))
	assert.Len(t, name, len("sglambda")+12)
	assert.NotEqual(t, name, SecurityGroupName())
}

func TestCreateWebGroup(t *testing.T) {
	ctx := context.Background()
	fixedName := func() string { return "sglambda0123456789ab" }

	t.Run("Creates the group and opens port 80", func(t *testing.T) {
		mockClient := new(MockEC2Client)
		mockClient.On("CreateSecurityGroupWithContext", ctx, &ec2.CreateSecurityGroupInput{
			Description: aws.String("security group from lambda"),
			GroupName:   aws.String("sglambda0123456789ab"),
		}).Return(&ec2.CreateSecurityGroupOutput{GroupId: aws.String("sg-123")}, nil)

		mockClient.On("AuthorizeSecurityGroupIngressWithContext", ctx, &ec2.AuthorizeSecurityGroupIngressInput{
			GroupId: aws.String("sg-123"),
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
		}).Return(&ec2.AuthorizeSecurityGroupIngressOutput{Return: aws.Bool(true)}, nil)

		groups := &SecurityGroups{client: mockClient, newName: fixedName}
		groupID, out, err := groups.CreateWebGroup(ctx)
		require.NoError(t, err)
		assert.Equal(t, "sg-123", groupID)
		assert.True(t, aws.BoolValue(out.Return))

		mockClient.AssertExpectations(t)
	})

	t.Run("Create fails", func(t *testing.T) {
		mockClient := new(MockEC2Client)
		mockClient.On("CreateSecurityGroupWithContext", ctx, mock.Anything).
			Return((*ec2.CreateSecurityGroupOutput)(nil), fmt.Errorf("duplicate"))

		groups := &SecurityGroups{client: mockClient, newName: fixedName}
		_, _, err := groups.CreateWebGroup(ctx)
		require.EqualError(t, err, "failed to create security group: duplicate")
		mockClient.AssertNotCalled(t, "AuthorizeSecurityGroupIngressWithContext", mock.Anything, mock.Anything)
	})

	t.Run("Authorize fails", func(t *testing.T) {
		mockClient := new(MockEC2Client)
		mockClient.On("CreateSecurityGroupWithContext", ctx, mock.Anything).
			Return(&ec2.CreateSecurityGroupOutput{GroupId: aws.String("sg-123")}, nil)
		mockClient.On("AuthorizeSecurityGroupIngressWithContext", ctx, mock.Anything).
			Return((*ec2.AuthorizeSecurityGroupIngressOutput)(nil), fmt.Errorf("limit"))

		groups := NewSecurityGroups(mockClient)
		groupID, _, err := groups.CreateWebGroup(ctx)
		require.EqualError(t, err, "failed to authorize ingress for sg-123: limit")
		assert.Equal(t, "sg-123", groupID)
	})
}
