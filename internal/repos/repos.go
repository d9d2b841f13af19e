package repos

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/codecommit"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type CodeCommitAPI interface {
	CreateRepositoryWithContext(aws.Context, *codecommit.CreateRepositoryInput, ...request.Option) (*codecommit.CreateRepositoryOutput, error)
}

// Metadata is the repository metadata without its creation and modification dates.
type Metadata struct {
	AccountID             string `json:"accountId,omitempty"`
	Arn                   string `json:"Arn,omitempty"`
	CloneURLHTTP          string `json:"cloneUrlHttp,omitempty"`
	CloneURLSSH           string `json:"cloneUrlSsh,omitempty"`
	DefaultBranch         string `json:"defaultBranch,omitempty"`
	RepositoryDescription string `json:"repositoryDescription,omitempty"`
	RepositoryID          string `json:"repositoryId"`
	RepositoryName        string `json:"repositoryName"`
}

type Creator struct {
	client  CodeCommitAPI
	prefix  string
	newName func(prefix string) string
}

func NewCreator(client CodeCommitAPI, prefix string) *Creator {
	return &Creator{client: client, prefix: prefix, newName: func(prefix string) string {
		return prefix + uuid.NewString()
	}}
}

func (c *Creator) Create(ctx context.Context) (Metadata, error) {
	name := c.newName(c.prefix)
	resp, err := c.client.CreateRepositoryWithContext(ctx, &codecommit.CreateRepositoryInput{
		RepositoryName: aws.String(name),
	})
	if err != nil {
		return Metadata{}, errors.Wrapf(err, "failed to create repository %s", name)
	}
	md := resp.RepositoryMetadata
	if md == nil {
		return Metadata{}, errors.Errorf("no metadata returned for repository %s", name)
	}

	return Metadata{
		AccountID:             aws.StringValue(md.AccountId),
		Arn:                   aws.StringValue(md.Arn),
		CloneURLHTTP:          aws.StringValue(md.CloneUrlHttp),
		CloneURLSSH:           aws.StringValue(md.CloneUrlSsh),
		DefaultBranch:         aws.StringValue(md.DefaultBranch),
		RepositoryDescription: aws.StringValue(md.RepositoryDescription),
		RepositoryID:          aws.StringValue(md.RepositoryId),
		RepositoryName:        aws.StringValue(md.RepositoryName),
	}, nil
}
